package dto

import "time"

// ErrorResponse is the JSON error body returned by every failing
// endpoint.
//
// Fields:
//   - Message: Human-readable description of what failed.
//   - ErrorDetails: Underlying error text, when one exists.
//   - Timestamp: Moment the response was built.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Invalid request"`
	ErrorDetails string    `json:"error,omitempty" example:"symbol is required"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel
// through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds a response for message, attaching err's text
// when err is non-nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	e := ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		e.ErrorDetails = err.Error()
	}
	return e
}
