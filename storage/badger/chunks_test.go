package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/recallit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestChunk(meetingID string, index int, content string) *core.TranscriptChunk {
	return &core.TranscriptChunk{
		MeetingID:   meetingID,
		ChunkIndex:  index,
		Content:     content,
		SpeakerName: "Alice",
		VectorID:    core.VectorID(meetingID, index),
		ContentHash: core.ContentHash(content),
	}
}

func TestAddTranscriptChunks(t *testing.T) {
	chunks, _, _ := NewMemoryStores(t)
	ctx := context.Background()

	inserted, err := chunks.AddTranscriptChunks(ctx,
		makeTestChunk("m1", 0, "first chunk"),
		makeTestChunk("m1", 1, "second chunk"),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "first chunk", stored[0].Content)
	assert.Equal(t, "second chunk", stored[1].Content)
	assert.False(t, stored[0].InsertedAt.IsZero())
}

func TestAddTranscriptChunksSkipsDuplicates(t *testing.T) {
	chunks, _, _ := NewMemoryStores(t)
	ctx := context.Background()

	inserted, err := chunks.AddTranscriptChunks(ctx, makeTestChunk("m1", 0, "original"))
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	// Re-running the same batch must not overwrite or double-insert.
	inserted, err = chunks.AddTranscriptChunks(ctx,
		makeTestChunk("m1", 0, "replacement"),
		makeTestChunk("m1", 1, "new chunk"),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "original", stored[0].Content)
	assert.Equal(t, "new chunk", stored[1].Content)
}

func TestAddTranscriptChunksRejectsInvalid(t *testing.T) {
	chunks, _, _ := NewMemoryStores(t)
	ctx := context.Background()

	bad := makeTestChunk("m1", 0, "content")
	bad.VectorID = "wrong_id"

	_, err := chunks.AddTranscriptChunks(ctx, bad)
	assert.ErrorIs(t, err, core.ErrVectorIDMismatch)

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGetTranscriptChunksOrder(t *testing.T) {
	chunks, _, _ := NewMemoryStores(t)
	ctx := context.Background()

	// Insert out of order; iteration must come back in index order.
	_, err := chunks.AddTranscriptChunks(ctx,
		makeTestChunk("m1", 2, "third"),
		makeTestChunk("m1", 0, "first"),
		makeTestChunk("m1", 1, "second"),
	)
	require.NoError(t, err)

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i, chunk := range stored {
		assert.Equal(t, i, chunk.ChunkIndex)
	}
}

func TestGetTranscriptChunksIsolatedByMeeting(t *testing.T) {
	chunks, _, _ := NewMemoryStores(t)
	ctx := context.Background()

	_, err := chunks.AddTranscriptChunks(ctx,
		makeTestChunk("m1", 0, "meeting one"),
		makeTestChunk("m2", 0, "meeting two"),
	)
	require.NoError(t, err)

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "meeting one", stored[0].Content)
}

func TestDeleteTranscriptChunks(t *testing.T) {
	chunks, _, _ := NewMemoryStores(t)
	ctx := context.Background()

	_, err := chunks.AddTranscriptChunks(ctx,
		makeTestChunk("m1", 0, "one"),
		makeTestChunk("m1", 1, "two"),
		makeTestChunk("m2", 0, "other meeting"),
	)
	require.NoError(t, err)

	require.NoError(t, chunks.DeleteTranscriptChunks(ctx, "m1"))

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, stored)

	other, err := chunks.GetTranscriptChunks(ctx, "m2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestChunkInsertedAtPreserved(t *testing.T) {
	chunks, _, _ := NewMemoryStores(t)
	ctx := context.Background()

	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	chunk := makeTestChunk("m1", 0, "content")
	chunk.InsertedAt = when

	_, err := chunks.AddTranscriptChunks(ctx, chunk)
	require.NoError(t, err)

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].InsertedAt.Equal(when))
}
