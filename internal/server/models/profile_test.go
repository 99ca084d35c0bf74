package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	assert.True(t, PositionCoordinator.Valid())
	assert.True(t, PositionInstructor.Valid())
	assert.False(t, Position("student").Valid())
	assert.False(t, Position("").Valid())

	assert.Equal(t, "Coordinator", PositionCoordinator.Label())
	assert.Equal(t, "Instructor", PositionInstructor.Label())
	assert.Equal(t, "student", Position("student").Label())
}
