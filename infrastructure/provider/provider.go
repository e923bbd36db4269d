// Package provider provides the text generation abstraction over hosted
// language model services. A provider performs a single synchronous
// completion call per request; there is no streaming and no retrying.
package provider

import (
	"context"
	"errors"
)

// ErrGeneration is the base error for any provider-side failure. Callers in
// the enrichment pipeline never surface it; they degrade to fallback values.
var ErrGeneration = errors.New("text generation failed")

// Message represents a chat message.
type Message struct {
	role    string
	content string
}

// NewMessage creates a new Message.
func NewMessage(role, content string) Message {
	return Message{role: role, content: content}
}

// Role returns the message role (e.g. "system", "user").
func (m Message) Role() string { return m.role }

// Content returns the message content.
func (m Message) Content() string { return m.content }

// SystemMessage creates a system message.
func SystemMessage(content string) Message {
	return NewMessage("system", content)
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return NewMessage("user", content)
}

// CompletionRequest represents one text generation request.
type CompletionRequest struct {
	messages    []Message
	maxTokens   int
	temperature float64
}

// NewCompletionRequest creates a CompletionRequest.
func NewCompletionRequest(messages []Message) CompletionRequest {
	msgs := make([]Message, len(messages))
	copy(msgs, messages)
	return CompletionRequest{messages: msgs}
}

// WithMaxTokens returns a copy with the specified token cap.
func (r CompletionRequest) WithMaxTokens(n int) CompletionRequest {
	r.maxTokens = n
	return r
}

// WithTemperature returns a copy with the specified temperature.
func (r CompletionRequest) WithTemperature(t float64) CompletionRequest {
	r.temperature = t
	return r
}

// Messages returns the messages.
func (r CompletionRequest) Messages() []Message {
	msgs := make([]Message, len(r.messages))
	copy(msgs, r.messages)
	return msgs
}

// MaxTokens returns the token cap, 0 meaning provider default.
func (r CompletionRequest) MaxTokens() int { return r.maxTokens }

// Temperature returns the temperature, 0 meaning provider default.
func (r CompletionRequest) Temperature() float64 { return r.temperature }

// CompletionResponse represents a text generation response.
type CompletionResponse struct {
	content      string
	finishReason string
}

// NewCompletionResponse creates a CompletionResponse.
func NewCompletionResponse(content, finishReason string) CompletionResponse {
	return CompletionResponse{content: content, finishReason: finishReason}
}

// Content returns the generated text.
func (r CompletionResponse) Content() string { return r.content }

// FinishReason returns why generation stopped.
func (r CompletionResponse) FinishReason() string { return r.finishReason }

// TextGenerator performs single-shot text completions.
type TextGenerator interface {
	// Complete sends one prompt and returns the model's raw text.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// ModelName returns the configured model identifier.
	ModelName() string

	// Close releases provider resources.
	Close() error
}

// ProviderError wraps provider failures with operation context. It unwraps to
// ErrGeneration so call sites can classify with errors.Is.
type ProviderError struct {
	operation  string
	statusCode int
	message    string
	cause      error
}

// NewProviderError creates a ProviderError.
func NewProviderError(operation string, statusCode int, message string, cause error) *ProviderError {
	return &ProviderError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
		cause:      cause,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap returns ErrGeneration joined with the underlying cause.
func (e *ProviderError) Unwrap() error {
	return errors.Join(ErrGeneration, e.cause)
}

// Operation returns the operation that failed.
func (e *ProviderError) Operation() string { return e.operation }

// StatusCode returns the provider HTTP status if available.
func (e *ProviderError) StatusCode() int { return e.statusCode }

// Message returns the error message.
func (e *ProviderError) Message() string { return e.message }
