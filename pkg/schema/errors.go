package schema

import "fmt"

// Error codes for structured error reporting. They map onto the failure
// taxonomy: transport failures abort with no state change, application
// failures surface the server message, validation failures block the network
// call entirely.
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeTransport   = "TRANSPORT_ERROR"
	ErrCodeApplication = "APPLICATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
)

// FlowdeckError is the structured error type for all flowdeck operations.
type FlowdeckError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *FlowdeckError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *FlowdeckError) Unwrap() error {
	return e.Cause
}

// NewError creates a new FlowdeckError.
func NewError(code, message string) *FlowdeckError {
	return &FlowdeckError{Code: code, Message: message}
}

// NewErrorf creates a new FlowdeckError with a formatted message.
func NewErrorf(code, format string, args ...any) *FlowdeckError {
	return &FlowdeckError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches an underlying cause.
func (e *FlowdeckError) WithCause(err error) *FlowdeckError {
	e.Cause = err
	return e
}

// WithDetails attaches key-value details.
func (e *FlowdeckError) WithDetails(details map[string]any) *FlowdeckError {
	e.Details = details
	return e
}
