package main

import (
	"fmt"

	"github.com/gookit/color"

	"mediaflow/contract"
	"mediaflow/domain"
	"mediaflow/domain/event"
)

var _ contract.EventSink = (*ConsoleSink)(nil)

// ConsoleSink prints upload lifecycle changes as they happen. Progress events
// are throttled to every tenth percent to keep the output readable.
type ConsoleSink struct {
	lastPercent map[domain.Handle]int
}

func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{lastPercent: make(map[domain.Handle]int)}
}

func (s *ConsoleSink) Consume(e event.UploadEvent) {
	switch evt := e.(type) {
	case event.ProgressUpdated:
		if evt.Percent != 100 && evt.Percent-s.lastPercent[evt.Handle] < 10 {
			return
		}
		s.lastPercent[evt.Handle] = evt.Percent
		fmt.Printf("%s %s %d%%\n", color.Cyan.Sprint("[upload]"), evt.Name, evt.Percent)
	case event.StateChanged:
		fmt.Printf("%s %s -> %s\n", statusTag(evt.Status), evt.Name, evt.Message)
	case event.AbortFailed:
		fmt.Printf("%s session %s could not be aborted: %s\n",
			color.Yellow.Sprint("[warn]"), evt.UploadID, evt.Reason)
	}
}

func statusTag(status domain.UploadStatus) string {
	switch status {
	case domain.StatusError:
		return color.Red.Sprintf("[%s]", status)
	case domain.StatusProcessed, domain.StatusAwaitingAction:
		return color.Green.Sprintf("[%s]", status)
	default:
		return color.Blue.Sprintf("[%s]", status)
	}
}
