// Package inference talks to the hosted text-generation API that backs /ask.
//
// Generators never return a Go error. Every outcome is one of the Result
// variants below, and callers switch on the concrete type to decide what the
// user sees.
package inference

import (
	"context"
	"fmt"
)

// NoAnswer is used when the API answers with an object lacking generated_text.
const NoAnswer = "No answer."

type Generator interface {
	Generate(ctx context.Context, question string) Result
}

type Result interface {
	isResult()
}

// Answer is a successful generation.
type Answer struct {
	Text string
}

// APIError is a non-200 reply. The body is deliberately not kept.
type APIError struct {
	StatusCode int
}

// TransportError covers everything that kept a response from arriving.
type TransportError struct {
	Err error
}

// MalformedResponse is a 200 whose body does not match the documented shape.
type MalformedResponse struct {
	Detail string
}

func (Answer) isResult() {}
func (APIError) isResult() {}
func (TransportError) isResult() {}
func (MalformedResponse) isResult() {}

func (e APIError) Error() string {
	return fmt.Sprintf("api status %d", e.StatusCode)
}

func (e TransportError) Error() string {
	return e.Err.Error()
}

func (e MalformedResponse) Error() string {
	return "malformed response: " + e.Detail
}
