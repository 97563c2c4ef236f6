package xisbn

import "errors"

// Kind classifies a validation failure.
type Kind int

const (
	TypeError Kind = iota + 1
	ValueError
)

func (k Kind) String() string {
	switch k {
	case TypeError:
		return "type error"
	case ValueError:
		return "value error"
	default:
		return "unknown"
	}
}

var (
	ErrType  = errors.New("xisbn: type error")
	ErrValue = errors.New("xisbn: value error")
)

// ValidationError is returned before any network call when a lookup parameter
// has the wrong type or does not match its grammar.
type ValidationError struct {
	Field   string
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets callers match with errors.Is(err, ErrType) or errors.Is(err, ErrValue).
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrType:
		return e.Kind == TypeError
	case ErrValue:
		return e.Kind == ValueError
	}
	return false
}

func typeErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: TypeError, Message: message}
}

func valueErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: ValueError, Message: message}
}
