package worldtime

import "fmt"

// ErrorKind classifies a failed resolution.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindLocationNotFound
	KindServiceUnavailable
	KindTimezoneNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindLocationNotFound:
		return "location_not_found"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindTimezoneNotFound:
		return "timezone_not_found"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind with its snake_case name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Retryable reports whether the same request may succeed later.
func (k ErrorKind) Retryable() bool {
	return k == KindServiceUnavailable
}

// Error is a classified resolution failure. Message is safe to show to the
// end user; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidInput() *Error {
	return &Error{Kind: KindInvalidInput, Message: "Please provide a location."}
}

func locationNotFound(location string, cause error) *Error {
	return &Error{
		Kind:    KindLocationNotFound,
		Message: "Could not find location: " + location,
		Err:     cause,
	}
}

func serviceUnavailable(cause error) *Error {
	return &Error{
		Kind:    KindServiceUnavailable,
		Message: "Geocoding service unavailable. Try again later.",
		Err:     cause,
	}
}

func timezoneNotFound(location string, cause error) *Error {
	return &Error{
		Kind:    KindTimezoneNotFound,
		Message: "Could not find timezone for " + location,
		Err:     cause,
	}
}

func unknown(cause error) *Error {
	return &Error{Kind: KindUnknown, Message: cause.Error(), Err: cause}
}
