package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"NotFound wraps ErrNotFound", NotFound("post", 42), ErrNotFound, true},
		{"InvalidArgument wraps ErrInvalidArgument", InvalidArgument("limit", "bad"), ErrInvalidArgument, true},
		{"Unauthenticated wraps ErrUnauthenticated", Unauthenticated("no token"), ErrUnauthenticated, true},
		{"ConflictRetryable wraps ErrConflictRetryable", ConflictRetryable("toggle", errors.New("deadlock")), ErrConflictRetryable, true},
		{"NotFound does not match ErrInvalidArgument", NotFound("post", 42), ErrInvalidArgument, false},
		{"wrapped with fmt.Errorf", fmt.Errorf("service: %w", NotFound("user", 7)), ErrNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMatch, errors.Is(tt.err, tt.target))
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "post not found with id 42", NotFound("post", 42).Error())
	assert.Equal(t, "cannot follow yourself", InvalidArgument("following_id", "cannot follow yourself").Error())
	assert.Equal(t, "following_id", InvalidArgument("following_id", "x").Field)
}

func TestConflictRetryableKeepsCause(t *testing.T) {
	cause := errors.New("Deadlock found")
	err := ConflictRetryable("follow.toggle", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "follow.toggle")
}
