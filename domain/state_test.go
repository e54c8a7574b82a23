package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadStatusTransitions(t *testing.T) {
	req := require.New(t)

	allowed := []struct{ from, to UploadStatus }{
		{StatusPendingUpload, StatusAwaitingAction},
		{StatusPendingUpload, StatusError},
		{StatusAwaitingAction, StatusProcessing},
		{StatusProcessing, StatusProcessed},
		{StatusProcessing, StatusError},
	}
	for _, tr := range allowed {
		req.True(tr.from.CanTransitionTo(tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	forbidden := []struct{ from, to UploadStatus }{
		{StatusAwaitingAction, StatusError},
		{StatusAwaitingAction, StatusProcessed},
		{StatusProcessing, StatusAwaitingAction},
		{StatusError, StatusPendingUpload},
		{StatusError, StatusProcessing},
		{StatusProcessed, StatusProcessing},
	}
	for _, tr := range forbidden {
		req.False(tr.from.CanTransitionTo(tr.to), "%s -> %s should be forbidden", tr.from, tr.to)
	}
}
