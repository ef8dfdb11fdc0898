package ai

import "errors"

var (
	// ErrEmbedding indicates an embedding provider call failed.
	ErrEmbedding = errors.New("embedding failed")

	// ErrGeneration indicates a language model call failed or returned no
	// completion.
	ErrGeneration = errors.New("generation failed")
)
