package reconcile

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/poiesic/recallit/ai/mock"
	"github.com/poiesic/recallit/core"
	badgerstore "github.com/poiesic/recallit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSweepConfig() *Config {
	return &Config{
		PoolSize:       2,
		ReportInterval: 1000,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

type sweepFixture struct {
	sweeper  *Sweeper
	chunks   *badgerstore.ChunkRepository
	meetings *badgerstore.MeetingRepository
	vectors  *badgerstore.VectorIndex
	embedder *mock.MockEmbedder
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()
	chunks, meetings, vectors := badgerstore.NewMemoryStores(t)
	embedder := mock.NewMockEmbedder()

	sweeper, err := NewSweeper(chunks, meetings, vectors, embedder, testSweepConfig(), io.Discard)
	require.NoError(t, err)

	return &sweepFixture{
		sweeper:  sweeper,
		chunks:   chunks,
		meetings: meetings,
		vectors:  vectors,
		embedder: embedder,
	}
}

func (f *sweepFixture) seedMeeting(t *testing.T, meetingID, userID string, contents ...string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.meetings.PutMeeting(ctx, &core.Meeting{
		ID:     meetingID,
		UserID: userID,
		Title:  "Swept Meeting",
	}))

	for i, content := range contents {
		_, err := f.chunks.AddTranscriptChunks(ctx, &core.TranscriptChunk{
			MeetingID:   meetingID,
			ChunkIndex:  i,
			Content:     content,
			SpeakerName: "Alice",
			VectorID:    core.VectorID(meetingID, i),
			ContentHash: core.ContentHash(content),
		})
		require.NoError(t, err)
	}
}

func (f *sweepFixture) seedVector(t *testing.T, meetingID, userID string, index int, content string) {
	t.Helper()
	err := f.vectors.UpsertVectors(context.Background(), &core.VectorEntry{
		ID:     core.VectorID(meetingID, index),
		Values: []float32{1, 0, 0},
		Metadata: core.VectorMetadata{
			MeetingID:    meetingID,
			UserID:       userID,
			ChunkIndex:   index,
			Content:      content,
			SpeakerName:  "Alice",
			MeetingTitle: "Swept Meeting",
		},
	})
	require.NoError(t, err)
}

func TestNewSweeperRequiresDependencies(t *testing.T) {
	chunks, meetings, vectors := badgerstore.NewMemoryStores(t)
	embedder := mock.NewMockEmbedder()

	_, err := NewSweeper(nil, meetings, vectors, embedder, nil, io.Discard)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewSweeper(chunks, nil, vectors, embedder, nil, io.Discard)
	assert.ErrorIs(t, err, ErrMeetingRepositoryRequired)

	_, err = NewSweeper(chunks, meetings, nil, embedder, nil, io.Discard)
	assert.ErrorIs(t, err, ErrVectorIndexRequired)

	_, err = NewSweeper(chunks, meetings, vectors, nil, nil, io.Discard)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	// Nil config falls back to defaults.
	_, err = NewSweeper(chunks, meetings, vectors, embedder, nil, io.Discard)
	assert.NoError(t, err)
}

func TestSweepEmptyDatabase(t *testing.T) {
	f := newSweepFixture(t)

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.MeetingsSwept)
	assert.Zero(t, report.Repaired)
}

func TestSweepHealthyMeetingUntouched(t *testing.T) {
	f := newSweepFixture(t)
	f.seedMeeting(t, "m1", "user-1", "all indexed")
	f.seedVector(t, "m1", "user-1", 0, "all indexed")

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.MeetingsSwept)
	assert.Equal(t, 1, report.ChunksChecked)
	assert.Zero(t, report.Missing)
	assert.Zero(t, report.Drifted)
	assert.Zero(t, report.Repaired)
	assert.Zero(t, f.embedder.CallCount(), "no embedding call for healthy meetings")
}

func TestSweepRepairsMissingVector(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()

	// Chunk persisted but the vector write never happened.
	f.seedMeeting(t, "m1", "user-1", "stranded chunk")

	report, err := f.sweeper.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 1, report.Repaired)

	fetched, err := f.vectors.FetchVectors(ctx, core.VectorID("m1", 0))
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	entry := fetched[core.VectorID("m1", 0)]
	assert.Equal(t, "user-1", entry.Metadata.UserID)
	assert.Equal(t, "Swept Meeting", entry.Metadata.MeetingTitle)
	assert.Equal(t, "stranded chunk", entry.Metadata.Content)
}

func TestSweepRepairsDriftedVector(t *testing.T) {
	f := newSweepFixture(t)
	ctx := context.Background()

	f.seedMeeting(t, "m1", "user-1", "current content")
	f.seedVector(t, "m1", "user-1", 0, "stale content")

	report, err := f.sweeper.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Drifted)
	assert.Equal(t, 1, report.Repaired)

	fetched, err := f.vectors.FetchVectors(ctx, core.VectorID("m1", 0))
	require.NoError(t, err)
	assert.Equal(t, "current content", fetched[core.VectorID("m1", 0)].Metadata.Content)
}

func TestSweepMultipleMeetings(t *testing.T) {
	f := newSweepFixture(t)

	f.seedMeeting(t, "m1", "user-1", "indexed fine")
	f.seedVector(t, "m1", "user-1", 0, "indexed fine")
	f.seedMeeting(t, "m2", "user-1", "never indexed", "also never indexed")
	f.seedMeeting(t, "m3", "user-2", "other tenant stranded")

	report, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.MeetingsSwept)
	assert.Equal(t, 4, report.ChunksChecked)
	assert.Equal(t, 3, report.Missing)
	assert.Equal(t, 3, report.Repaired)
}

func TestSweepReportsEmbeddingFailure(t *testing.T) {
	f := newSweepFixture(t)
	f.seedMeeting(t, "m1", "user-1", "stranded chunk")

	f.embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model offline")
	}

	report, err := f.sweeper.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, report.MeetingsSwept)
	assert.Equal(t, 1, report.Missing)
	assert.Zero(t, report.Repaired)
}
