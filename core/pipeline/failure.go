package pipeline

import "github.com/openjwt/jwtvalidator/core/events"

// Failure is the outcome of a pipeline stage that stopped validation. It
// carries the EventType so callers can classify the failure (and its
// Category) without parsing an error string.
type Failure struct {
	EventType events.Type
	Message   string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Message == "" {
		return "jwt validation failed: " + f.EventType.String()
	}
	return "jwt validation failed: " + f.EventType.String() + ": " + f.Message
}

func fail(t events.Type, message string) *Failure {
	return &Failure{EventType: t, Message: message}
}
