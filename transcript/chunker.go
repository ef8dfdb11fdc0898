package transcript

import (
	"fmt"
	"strings"

	"github.com/poiesic/recallit/core"
)

// DefaultMaxChunkSize is the default chunk size budget in characters.
const DefaultMaxChunkSize = 1000

// Chunker splits a speaker-tagged transcript into bounded, ordered chunks
// suitable for embedding. It groups consecutive speaker lines under a size
// budget and never splits a single line across chunks: a line that exceeds
// the budget on its own is emitted whole rather than truncated.
//
// Chunking is pure and deterministic; the same transcript always yields the
// same chunks.
type Chunker struct {
	maxChunkSize int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithMaxChunkSize sets the chunk size budget in characters.
// Values below 1 are ignored.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChunkSize = size
		}
	}
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts ...Option) *Chunker {
	c := &Chunker{maxChunkSize: DefaultMaxChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits a newline-delimited transcript of "Speaker: words" lines into
// contiguous, 0-indexed chunks. Every non-blank line appears in exactly one
// chunk, in transcript order. An empty or whitespace-only transcript is an
// error.
func (c *Chunker) Chunk(transcript string) ([]core.Chunk, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("%w: transcript is empty", ErrEmptyTranscript)
	}

	var chunks []core.Chunk
	var lines []string
	size := 0

	flush := func() {
		if len(lines) == 0 {
			return
		}
		chunks = append(chunks, core.Chunk{
			Content:    strings.Join(lines, "\n"),
			ChunkIndex: len(chunks),
		})
		lines = nil
		size = 0
	}

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// +1 for the newline joining this line to the previous one.
		if size > 0 && size+1+len(line) > c.maxChunkSize {
			flush()
		}

		lines = append(lines, line)
		if size > 0 {
			size++
		}
		size += len(line)
	}
	flush()

	return chunks, nil
}
