package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/recallit/ai"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
	"github.com/poiesic/recallit/transcript"
)

// Pipeline indexes meeting transcripts: it chunks the raw text, persists the
// chunks, embeds them in one batch and upserts the vectors. The relational
// write happens before the vector write, so a failure between the two leaves
// chunks without vectors, never vectors without chunks. Re-running the
// pipeline for the same meeting is safe: duplicate chunks are skipped and
// vector ids are deterministic, so upserts converge instead of duplicating.
type Pipeline struct {
	chunker   *transcript.Chunker
	chunkRepo storage.ChunkRepository
	vectors   storage.VectorIndex
	embedder  ai.Embedder
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger.With("component", "ingestion")
	}
}

// WithChunker sets a custom transcript chunker.
func WithChunker(chunker *transcript.Chunker) Option {
	return func(p *Pipeline) {
		p.chunker = chunker
	}
}

// NewPipeline creates an indexing pipeline over the given stores and embedder.
func NewPipeline(chunkRepo storage.ChunkRepository, vectors storage.VectorIndex, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if chunkRepo == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		chunker:   transcript.NewChunker(),
		chunkRepo: chunkRepo,
		vectors:   vectors,
		embedder:  embedder,
		logger:    slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Result reports what one ProcessTranscript run did.
type Result struct {
	// ChunkCount is the number of chunks the transcript produced.
	ChunkCount int
	// Inserted is the number of chunks newly persisted; chunks skipped as
	// duplicates are not counted.
	Inserted int
}

// ProcessTranscript chunks, persists, embeds and indexes one meeting
// transcript. The meeting title is carried into vector metadata so answers
// can cite it without a join; empty titles fall back to "Untitled Meeting"
// and chunks with no speaker label to "Unknown".
func (p *Pipeline) ProcessTranscript(ctx context.Context, meetingID, userID, rawTranscript, meetingTitle string) (*Result, error) {
	if meetingID == "" {
		return nil, core.ErrEmptyMeetingID
	}
	if userID == "" {
		return nil, core.ErrEmptyUserID
	}

	chunks, err := p.chunker.Chunk(rawTranscript)
	if err != nil {
		return nil, err
	}

	if meetingTitle == "" {
		meetingTitle = "Untitled Meeting"
	}

	records := make([]*core.TranscriptChunk, len(chunks))
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		speaker := transcript.ExtractSpeaker(chunk.Content)
		if speaker == "" {
			speaker = "Unknown"
		}
		records[i] = &core.TranscriptChunk{
			MeetingID:   meetingID,
			ChunkIndex:  chunk.ChunkIndex,
			Content:     chunk.Content,
			SpeakerName: speaker,
			VectorID:    core.VectorID(meetingID, chunk.ChunkIndex),
			ContentHash: core.ContentHash(chunk.Content),
		}
		texts[i] = chunk.Content
	}

	inserted, err := p.chunkRepo.AddTranscriptChunks(ctx, records...)
	if err != nil {
		return nil, fmt.Errorf("failed to persist chunks: %w", err)
	}
	if inserted < len(records) {
		p.logger.Info("skipped existing chunks",
			"meetingID", meetingID, "skipped", len(records)-inserted)
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks",
			ErrEmbeddingCountMismatch, len(vectors), len(texts))
	}

	entries := make([]*core.VectorEntry, len(records))
	for i, record := range records {
		entries[i] = &core.VectorEntry{
			ID:     record.VectorID,
			Values: vectors[i],
			Metadata: core.VectorMetadata{
				MeetingID:    meetingID,
				UserID:       userID,
				ChunkIndex:   record.ChunkIndex,
				Content:      record.Content,
				SpeakerName:  record.SpeakerName,
				MeetingTitle: meetingTitle,
			},
		}
	}

	if err := p.vectors.UpsertVectors(ctx, entries...); err != nil {
		return nil, err
	}

	p.logger.Info("transcript indexed",
		"meetingID", meetingID, "chunks", len(records), "inserted", inserted)

	return &Result{ChunkCount: len(records), Inserted: inserted}, nil
}
