// internal/providers/provider.go

// Package providers defines the interface for interacting with generative
// model backends. It provides a common abstraction for one-shot prompt and
// completion calls regardless of the underlying implementation.
package providers

import "context"

// Generator is the interface a model backend must implement. Generate sends
// a single prompt and blocks until the completion is available; there is
// never more than one generation in flight.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelClient extends Generator with the startup readiness check and
// resource cleanup used by model-backed commands.
type ModelClient interface {
	Generator
	// EnsureModelReady checks that the configured model is loaded and ready,
	// loading it if necessary. A failure here is fatal to the process.
	EnsureModelReady(ctx context.Context) error
	// Close cleans up any resources used by the client.
	Close() error
}
