package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		h1 := ContentHash("Alice: We ship Friday.")
		h2 := ContentHash("Alice: We ship Friday.")
		assert.Equal(t, h1, h2)
	})

	t.Run("different content different hash", func(t *testing.T) {
		h1 := ContentHash("Alice: We ship Friday.")
		h2 := ContentHash("Bob: I will test today.")
		assert.NotEqual(t, h1, h2)
	})

	t.Run("empty content", func(t *testing.T) {
		h1 := ContentHash("")
		h2 := ContentHash("")
		assert.Equal(t, h1, h2)
	})
}

func TestVectorID(t *testing.T) {
	tests := []struct {
		name       string
		meetingID  string
		chunkIndex int
		want       string
	}{
		{"first chunk", "m1", 0, "m1_chunk_0"},
		{"later chunk", "m1", 42, "m1_chunk_42"},
		{"uuid style meeting id", "9b2e1a7c", 3, "9b2e1a7c_chunk_3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VectorID(tt.meetingID, tt.chunkIndex))
		})
	}
}

func TestVectorID_Rederivable(t *testing.T) {
	// The same pair always yields the same id; re-indexing a meeting
	// produces the same id set it produced the first time.
	first := make([]string, 5)
	for i := range first {
		first[i] = VectorID("m1", i)
	}
	for i := range first {
		assert.Equal(t, first[i], VectorID("m1", i))
	}
}
