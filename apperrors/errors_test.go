// file: apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(StateConflict, "team full")
	assert.Equal(t, StateConflict, KindOf(err))
	assert.True(t, IsKind(err, StateConflict))
	assert.False(t, IsKind(err, Validation))
	assert.EqualError(t, err, "team full")
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("joining team: %w", New(Permission, "not enrolled in this hackathon"))
	assert.Equal(t, Permission, KindOf(err))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("connection refused")))
	assert.False(t, IsKind(nil, NotFound))
}

func TestNewf(t *testing.T) {
	err := Newf(NotFound, "project %d not found", 42)
	assert.EqualError(t, err, "project 42 not found")
	assert.Equal(t, NotFound, KindOf(err))
}
