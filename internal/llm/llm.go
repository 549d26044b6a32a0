// Package llm defines the contract with the external language model service.
// The service is treated as an opaque prompt -> text function with possible
// failure; vendor response envelopes are never inspected outside the provider
// implementation.
package llm

import "context"

// Client sends a prompt to a language model and returns its textual reply.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
