package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUrgency(t *testing.T) {
	assert.True(t, ValidUrgency(UrgencyNormal))
	assert.True(t, ValidUrgency(UrgencyUrgent))
	assert.True(t, ValidUrgency(UrgencyCritical))
	assert.False(t, ValidUrgency(""))
	assert.False(t, ValidUrgency("CRITICAL"))
	assert.False(t, ValidUrgency("low"))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusFulfilled))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("open"))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusFulfilled))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))

	// Fulfilled and cancelled are terminal.
	assert.False(t, CanTransition(StatusFulfilled, StatusPending))
	assert.False(t, CanTransition(StatusFulfilled, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusFulfilled))

	// No self-transitions.
	assert.False(t, CanTransition(StatusPending, StatusPending))
}
