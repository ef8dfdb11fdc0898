package transcript

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_SingleChunkUnderBudget(t *testing.T) {
	// A short transcript with a generous budget yields exactly one chunk
	// holding both lines.
	chunker := NewChunker()
	chunks, err := chunker.Chunk("Alice: We ship Friday.\nBob: I will test today.\n")
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, "Alice: We ship Friday.\nBob: I will test today.", chunks[0].Content)
	assert.Equal(t, "Alice", ExtractSpeaker(chunks[0].Content))
}

func TestChunk_EmptyTranscript(t *testing.T) {
	chunker := NewChunker()

	tests := []struct {
		name       string
		transcript string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t\n  "},
		{"newlines only", "\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := chunker.Chunk(tt.transcript)
			assert.ErrorIs(t, err, ErrEmptyTranscript)
			assert.Nil(t, chunks)
		})
	}
}

func TestChunk_SplitsAtBudget(t *testing.T) {
	chunker := NewChunker(WithMaxChunkSize(30))
	chunks, err := chunker.Chunk("Alice: first line here\nBob: second line here\nCarol: third line here\n")
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "Alice: first line here", chunks[0].Content)
	assert.Equal(t, "Bob: second line here", chunks[1].Content)
	assert.Equal(t, "Carol: third line here", chunks[2].Content)
}

func TestChunk_GroupsLinesUnderBudget(t *testing.T) {
	chunker := NewChunker(WithMaxChunkSize(50))
	chunks, err := chunker.Chunk("Alice: short\nBob: also short\nCarol: a much longer closing statement here\n")
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "Alice: short\nBob: also short", chunks[0].Content)
	assert.Equal(t, "Carol: a much longer closing statement here", chunks[1].Content)
}

func TestChunk_OversizedLineEmittedWhole(t *testing.T) {
	// A line exceeding the budget alone still becomes its own chunk,
	// never truncated.
	long := "Alice: " + strings.Repeat("word ", 40)
	long = strings.TrimSpace(long)

	chunker := NewChunker(WithMaxChunkSize(20))
	chunks, err := chunker.Chunk("Bob: hi\n" + long + "\nCarol: bye\n")
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "Bob: hi", chunks[0].Content)
	assert.Equal(t, long, chunks[1].Content)
	assert.Equal(t, "Carol: bye", chunks[2].Content)
}

func TestChunk_CoverageAndContiguity(t *testing.T) {
	// Every line of the transcript appears in exactly one chunk, in order,
	// and chunk indexes are exactly 0..n-1.
	var sb strings.Builder
	var want []string
	for i := 0; i < 60; i++ {
		line := fmt.Sprintf("Speaker%d: utterance number %d with some filler text", i%4, i)
		want = append(want, line)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for _, budget := range []int{40, 120, 500, 10000} {
		t.Run(fmt.Sprintf("budget %d", budget), func(t *testing.T) {
			chunker := NewChunker(WithMaxChunkSize(budget))
			chunks, err := chunker.Chunk(sb.String())
			require.NoError(t, err)
			require.NotEmpty(t, chunks)

			var got []string
			for i, chunk := range chunks {
				assert.Equal(t, i, chunk.ChunkIndex)
				got = append(got, strings.Split(chunk.Content, "\n")...)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestChunk_Deterministic(t *testing.T) {
	chunker := NewChunker(WithMaxChunkSize(64))
	input := "Alice: alpha\nBob: beta\nCarol: gamma\nDave: delta\n"

	first, err := chunker.Chunk(input)
	require.NoError(t, err)
	second, err := chunker.Chunk(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChunk_IgnoresBlankLines(t *testing.T) {
	chunker := NewChunker()
	chunks, err := chunker.Chunk("Alice: hello\n\n\nBob: hi\n")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Alice: hello\nBob: hi", chunks[0].Content)
}

func TestNewChunker_InvalidSizeIgnored(t *testing.T) {
	chunker := NewChunker(WithMaxChunkSize(0))
	assert.Equal(t, DefaultMaxChunkSize, chunker.maxChunkSize)

	chunker = NewChunker(WithMaxChunkSize(-5))
	assert.Equal(t, DefaultMaxChunkSize, chunker.maxChunkSize)
}
