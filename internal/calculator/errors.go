package calculator

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a ValidationError.
type ErrorKind string

const (
	KindInvalidParticipantCount ErrorKind = "InvalidParticipantCount"
	KindAmountMismatch          ErrorKind = "AmountMismatch"
	KindPercentageMismatch      ErrorKind = "PercentageMismatch"
	KindUnsupportedSplitMethod  ErrorKind = "UnsupportedSplitMethod"
	KindUnknownParticipant      ErrorKind = "UnknownParticipant"
	KindInvalidAmount           ErrorKind = "InvalidAmount"
	KindInvalidPercentage       ErrorKind = "InvalidPercentage"
	KindInvalidDescription      ErrorKind = "InvalidDescription"
)

var (
	ErrInvalidParticipantCount = errors.New("invalid participant count")
	ErrAmountMismatch          = errors.New("amount mismatch")
	ErrPercentageMismatch      = errors.New("percentage mismatch")
	ErrUnsupportedSplitMethod  = errors.New("unsupported split method")
	ErrUnknownParticipant      = errors.New("unknown participant")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidPercentage       = errors.New("invalid percentage")
	ErrInvalidDescription      = errors.New("invalid description")
)

var sentinels = map[ErrorKind]error{
	KindInvalidParticipantCount: ErrInvalidParticipantCount,
	KindAmountMismatch:          ErrAmountMismatch,
	KindPercentageMismatch:      ErrPercentageMismatch,
	KindUnsupportedSplitMethod:  ErrUnsupportedSplitMethod,
	KindUnknownParticipant:      ErrUnknownParticipant,
	KindInvalidAmount:           ErrInvalidAmount,
	KindInvalidPercentage:       ErrInvalidPercentage,
	KindInvalidDescription:      ErrInvalidDescription,
}

// ValidationError reports user input that cannot be turned into a set of shares.
// Message is safe to show to the caller as-is.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

// NewValidationError creates a ValidationError of the given kind.
func NewValidationError(kind ErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the kind's sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return sentinels[e.Kind]
}

// HTTPStatus is the status code a validation failure maps to.
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// AsValidation returns the ValidationError in err's chain, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	_, ok := AsValidation(err)
	return ok
}
