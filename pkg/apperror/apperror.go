package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrConflictRetryable = errors.New("conflict, retry later")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // human-readable message
	Field   string // optional offending field
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

func InvalidArgument(field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidArgument,
		Message: message,
		Field:   field,
	}
}

// ConflictRetryable is returned once a transactional write has lost its race
// more times than the retry budget allows.
func ConflictRetryable(op string, cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrConflictRetryable, cause),
		Message: fmt.Sprintf("%s: concurrent update, retry later", op),
	}
}
