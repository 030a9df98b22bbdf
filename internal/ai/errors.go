package ai

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from gemini")

// ParseError means the model text could not be read as JSON. Candidate is the
// text that was handed to the decoder after fence stripping.
type ParseError struct {
	Candidate string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model response is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError is a non-success status from the generation endpoint. Message is the
// remote error text when the endpoint supplied one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gemini api returned status %d", e.Status)
}
