package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusBooked, StatusCheckedIn},
		{StatusBooked, StatusCancelled},
		{StatusCheckedIn, StatusInProgress},
		{StatusCheckedIn, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusCancelled, StatusBooked},
	}

	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to),
			"%s -> %s should be allowed", tc.from, tc.to)
	}

	forbidden := []struct{ from, to Status }{
		{StatusBooked, StatusInProgress},
		{StatusBooked, StatusCompleted},
		{StatusCheckedIn, StatusCompleted},
		{StatusInProgress, StatusCancelled},
		{StatusCompleted, StatusBooked},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusCheckedIn},
		{StatusCancelled, StatusCompleted},
	}

	for _, tc := range forbidden {
		err := CanTransition(tc.from, tc.to)
		require.Error(t, err, "%s -> %s should be rejected", tc.from, tc.to)
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
	}
}

func TestCanReassign(t *testing.T) {
	assert.NoError(t, CanReassign(StatusBooked))
	assert.NoError(t, CanReassign(StatusCheckedIn))
	assert.NoError(t, CanReassign(StatusInProgress))

	assert.Error(t, CanReassign(StatusCancelled))
	assert.Error(t, CanReassign(StatusCompleted))
}

func TestBlocks(t *testing.T) {
	assert.True(t, Blocks(StatusBooked))
	assert.True(t, Blocks(StatusCheckedIn))
	assert.True(t, Blocks(StatusInProgress))
	assert.True(t, Blocks(StatusCompleted))

	assert.False(t, Blocks(StatusCancelled))
}
