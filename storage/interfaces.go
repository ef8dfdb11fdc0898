package storage

import (
	"context"

	"github.com/poiesic/recallit/core"
)

// Filter is a conjunction of exact-match constraints applied to vector entry
// metadata at query time. UserID is mandatory: it is the multi-tenancy
// boundary and a query without it is rejected with ErrInvalidQuery.
// MeetingID is optional; when set, results are limited to that meeting.
type Filter struct {
	UserID    string
	MeetingID string
}

// ChunkRepository provides operations for persisted transcript chunks.
// Implementations must be thread-safe and support concurrent access.
type ChunkRepository interface {
	// AddTranscriptChunks persists chunks in one bulk write. Chunks whose
	// (MeetingID, ChunkIndex) pair already exists are skipped rather than
	// rejected, which makes re-running the indexing pipeline safe.
	// Returns the number of chunks actually inserted.
	AddTranscriptChunks(ctx context.Context, chunks ...*core.TranscriptChunk) (int, error)

	// GetTranscriptChunks retrieves all chunks for a meeting, ordered by
	// chunk index. Returns an empty slice if the meeting has no chunks.
	GetTranscriptChunks(ctx context.Context, meetingID string) ([]*core.TranscriptChunk, error)

	// DeleteTranscriptChunks removes all chunks for a meeting.
	// Deleting a meeting with no chunks is not an error.
	DeleteTranscriptChunks(ctx context.Context, meetingID string) error

	// Close releases resources held by the repository.
	Close() error
}

// MeetingRepository provides read/write access to the meeting metadata this
// core needs for prompt framing.
type MeetingRepository interface {
	// PutMeeting inserts or replaces a meeting record.
	// Sets InsertedAt if not already set.
	PutMeeting(ctx context.Context, meeting *core.Meeting) error

	// GetMeeting retrieves a meeting by id.
	// Returns ErrNotFound if the meeting doesn't exist.
	GetMeeting(ctx context.Context, meetingID string) (*core.Meeting, error)

	// ListMeetings retrieves all meetings, ordered by id.
	ListMeetings(ctx context.Context) ([]*core.Meeting, error)

	// DeleteMeeting removes a meeting along with its transcript chunks and
	// their vector entries. Returns ErrNotFound if the meeting doesn't exist.
	DeleteMeeting(ctx context.Context, meetingID string) error

	// Close releases resources held by the repository.
	Close() error
}

// VectorIndex is a metadata-filterable nearest-neighbour store keyed by a
// caller-assigned string id.
type VectorIndex interface {
	// UpsertVectors writes entries in one batched call. Upserting an
	// existing id replaces the prior entry; the caller sees the batch as
	// all-or-nothing. Fails with an error wrapping ErrIndexWrite.
	UpsertVectors(ctx context.Context, entries ...*core.VectorEntry) error

	// FetchVectors retrieves entries by id. Missing ids are simply absent
	// from the result; no error is returned for them.
	FetchVectors(ctx context.Context, ids ...string) (map[string]*core.VectorEntry, error)

	// QueryVectors returns up to topK entries matching the filter, ordered
	// by descending similarity to the query vector. Returns an empty slice
	// (never an error) when nothing matches. An empty Filter.UserID is
	// rejected with ErrInvalidQuery; provider failures wrap ErrIndexQuery.
	QueryVectors(ctx context.Context, vector []float32, filter Filter, topK int) ([]*core.RetrievalResult, error)

	// DeleteVectors removes entries by id. Missing ids are ignored.
	DeleteVectors(ctx context.Context, ids ...string) error

	// Close releases resources held by the index.
	Close() error
}
