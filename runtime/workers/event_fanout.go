package workers

import (
	"context"
	"log/slog"

	"mediaflow/contract"
	"mediaflow/domain/event"
)

var _ contract.Worker = (*EventFanout)(nil)

// EventFanout broadcasts upload events to the registered in-process sinks.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. EventFanout is not a message broker.
// Sinks serve observability and side effects (journal, console, metrics),
// never the upload flow itself.
type EventFanout struct {
	Log    *slog.Logger
	Events chan event.UploadEvent
	sinks  []contract.EventSink
}

func NewEventFanout(log *slog.Logger, events chan event.UploadEvent) *EventFanout {
	return &EventFanout{Log: log, Events: events}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.Events:
			if !ok {
				w.Log.Debug("Event channel closed, stopping fanout")
				return nil
			}
			w.Fanout(evt)
		case <-ctx.Done():
			w.Log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout One sink for each event
func (w *EventFanout) Fanout(evt event.UploadEvent) {
	for _, sink := range w.sinks {
		sink.Consume(evt)
	}
}
