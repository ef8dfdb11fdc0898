package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ContentHash generates a deterministic 64-bit fingerprint of text content
// using BLAKE2b hashing. Identical content always produces the same hash;
// the reconciliation sweep uses it to detect vector entries whose indexed
// content no longer matches the persisted chunk.
func ContentHash(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// VectorID derives the vector index identifier for a chunk from its owning
// meeting and position. The id is fully derivable from (meetingID,
// chunkIndex), which is what makes re-indexing idempotent: upserting under
// the same id overwrites rather than duplicates.
func VectorID(meetingID string, chunkIndex int) string {
	return fmt.Sprintf("%s_chunk_%d", meetingID, chunkIndex)
}

// Meeting holds the metadata this core reads for prompt framing.
// The full meeting record (recording, participants, processing flags) lives
// outside this module.
type Meeting struct {
	ID         string
	UserID     string
	Title      string
	StartedAt  time.Time // When the meeting took place
	InsertedAt time.Time // When the record was inserted into the store
}

// Chunk is the transient output of the transcript chunker. It becomes a
// TranscriptChunk once persisted by the indexing pipeline.
type Chunk struct {
	Content    string
	ChunkIndex int
}

// TranscriptChunk is a persisted, bounded slice of a meeting transcript.
// For a given meeting, chunk indexes are contiguous starting at 0 and the
// (MeetingID, ChunkIndex) pair is unique.
type TranscriptChunk struct {
	MeetingID   string
	ChunkIndex  int
	Content     string
	SpeakerName string // Best-effort extracted speaker label, "" if unknown
	VectorID    string // Always VectorID(MeetingID, ChunkIndex)
	ContentHash uint64 // BLAKE2b fingerprint of Content
	InsertedAt  time.Time
}

// VectorMetadata is the denormalized payload stored alongside each embedding.
// Query-time filtering and result assembly operate only on this metadata,
// avoiding a join back to the chunk store on every retrieval. UserID is the
// multi-tenancy boundary: every query must filter on it.
type VectorMetadata struct {
	MeetingID    string
	UserID       string
	ChunkIndex   int
	Content      string
	SpeakerName  string
	MeetingTitle string
}

// VectorEntry is a record in the vector index.
type VectorEntry struct {
	ID       string // VectorID(MeetingID, ChunkIndex)
	Values   []float32
	Metadata VectorMetadata
}

// RetrievalResult is a single match from a vector index query.
type RetrievalResult struct {
	Content      string
	SpeakerName  string
	MeetingID    string
	MeetingTitle string
	Confidence   float32 // Similarity score reported by the index
}

// Source identifies a retrieved chunk cited in a chat answer.
type Source struct {
	MeetingID    string
	MeetingTitle string
	Content      string
	SpeakerName  string
	Confidence   float32
}
