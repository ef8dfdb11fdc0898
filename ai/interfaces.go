package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error wrapping ErrEmbedding if the provider call fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// single batched provider call. The returned slice contains exactly one
	// embedding per input text, in the same order as the input texts; the
	// indexing pipeline relies on this to pair chunk i with embedding i.
	// Returns an error wrapping ErrEmbedding if the provider call fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces grounded free-text answers from a language model.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate invokes the model with a system prompt and an ordered message
	// sequence and returns the completion text. The system prompt is the
	// sole mechanism constraining the model to answer only from supplied
	// context; no output validation is performed here.
	// Returns an error wrapping ErrGeneration on provider failure. No
	// automatic retry is attempted.
	Generate(ctx context.Context, system string, messages []Message) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the answer generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
