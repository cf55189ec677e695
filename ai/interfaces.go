package ai

import "context"

// Completer invokes a language model with a single prompt and returns the
// text response. Invocations are synchronous and single-turn; no
// conversation state is retained between calls.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends one prompt to the model and returns the raw text
	// response. Returns an error if the model invocation fails; the
	// capability is assumed to carry its own transport resilience, so
	// callers do not retry.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Completer and
// Embedder instances, ensuring they share configuration appropriately.
type Provider interface {
	// Completer returns the language-model completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
