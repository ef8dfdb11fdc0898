package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestMeeting(id, userID string) *core.Meeting {
	return &core.Meeting{
		ID:        id,
		UserID:    userID,
		Title:     "Planning Session",
		StartedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestPutAndGetMeeting(t *testing.T) {
	_, meetings, _ := NewMemoryStores(t)
	ctx := context.Background()

	require.NoError(t, meetings.PutMeeting(ctx, makeTestMeeting("m1", "user-1")))

	meeting, err := meetings.GetMeeting(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", meeting.ID)
	assert.Equal(t, "user-1", meeting.UserID)
	assert.Equal(t, "Planning Session", meeting.Title)
	assert.False(t, meeting.InsertedAt.IsZero())
}

func TestGetMeetingNotFound(t *testing.T) {
	_, meetings, _ := NewMemoryStores(t)

	_, err := meetings.GetMeeting(context.Background(), "absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutMeetingRejectsInvalid(t *testing.T) {
	_, meetings, _ := NewMemoryStores(t)
	ctx := context.Background()

	err := meetings.PutMeeting(ctx, &core.Meeting{ID: "m1"})
	assert.ErrorIs(t, err, core.ErrEmptyUserID)

	err = meetings.PutMeeting(ctx, &core.Meeting{UserID: "user-1"})
	assert.ErrorIs(t, err, core.ErrEmptyMeetingID)
}

func TestListMeetings(t *testing.T) {
	_, meetings, _ := NewMemoryStores(t)
	ctx := context.Background()

	require.NoError(t, meetings.PutMeeting(ctx, makeTestMeeting("m1", "user-1")))
	require.NoError(t, meetings.PutMeeting(ctx, makeTestMeeting("m2", "user-2")))

	all, err := meetings.ListMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "m1", all[0].ID)
	assert.Equal(t, "m2", all[1].ID)
}

func TestDeleteMeetingCascades(t *testing.T) {
	chunks, meetings, vectors := NewMemoryStores(t)
	ctx := context.Background()

	require.NoError(t, meetings.PutMeeting(ctx, makeTestMeeting("m1", "user-1")))

	_, err := chunks.AddTranscriptChunks(ctx,
		makeTestChunk("m1", 0, "first"),
		makeTestChunk("m1", 1, "second"),
	)
	require.NoError(t, err)

	err = vectors.UpsertVectors(ctx,
		makeTestVector("m1", "user-1", 0, "first"),
		makeTestVector("m1", "user-1", 1, "second"),
	)
	require.NoError(t, err)

	require.NoError(t, meetings.DeleteMeeting(ctx, "m1"))

	_, err = meetings.GetMeeting(ctx, "m1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	stored, err := chunks.GetTranscriptChunks(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, stored)

	fetched, err := vectors.FetchVectors(ctx, core.VectorID("m1", 0), core.VectorID("m1", 1))
	require.NoError(t, err)
	assert.Empty(t, fetched)
}

func TestDeleteMeetingNotFound(t *testing.T) {
	_, meetings, _ := NewMemoryStores(t)

	err := meetings.DeleteMeeting(context.Background(), "absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteMeetingLeavesOtherMeetingsAlone(t *testing.T) {
	chunks, meetings, vectors := NewMemoryStores(t)
	ctx := context.Background()

	require.NoError(t, meetings.PutMeeting(ctx, makeTestMeeting("m1", "user-1")))
	require.NoError(t, meetings.PutMeeting(ctx, makeTestMeeting("m2", "user-1")))

	_, err := chunks.AddTranscriptChunks(ctx,
		makeTestChunk("m1", 0, "doomed"),
		makeTestChunk("m2", 0, "survivor"),
	)
	require.NoError(t, err)

	err = vectors.UpsertVectors(ctx,
		makeTestVector("m1", "user-1", 0, "doomed"),
		makeTestVector("m2", "user-1", 0, "survivor"),
	)
	require.NoError(t, err)

	require.NoError(t, meetings.DeleteMeeting(ctx, "m1"))

	survivor, err := meetings.GetMeeting(ctx, "m2")
	require.NoError(t, err)
	assert.Equal(t, "m2", survivor.ID)

	stored, err := chunks.GetTranscriptChunks(ctx, "m2")
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	fetched, err := vectors.FetchVectors(ctx, core.VectorID("m2", 0))
	require.NoError(t, err)
	assert.Len(t, fetched, 1)
}
