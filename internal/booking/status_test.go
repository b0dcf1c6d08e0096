package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
	}
	for _, tc := range allowed {
		got, err := tc.from.Transition(tc.to)
		assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.to, got)
	}

	denied := []struct{ from, to Status }{
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusPending, StatusCompleted},
		{StatusConfirmed, StatusPending},
	}
	for _, tc := range denied {
		_, err := tc.from.Transition(tc.to)
		assert.ErrorIs(t, err, ErrBadTransition, "%s -> %s", tc.from, tc.to)
	}

	_, err := StatusPending.Transition(Status("archived"))
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestStatusBlocking(t *testing.T) {
	assert.True(t, StatusPending.Blocking())
	assert.True(t, StatusConfirmed.Blocking())
	assert.False(t, StatusCancelled.Blocking())
	assert.False(t, StatusCompleted.Blocking())
}
