// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recallit/ai"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
	"github.com/poiesic/recallit/transcript"
)

// Config holds configuration for a reconciliation sweep.
type Config struct {
	// PoolSize is the number of meetings swept concurrently
	PoolSize int

	// ReportInterval is how often to report progress (number of meetings)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Config{
		PoolSize:       poolSize,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Report summarizes what one sweep found and repaired.
type Report struct {
	// MeetingsSwept is the number of meetings examined
	MeetingsSwept int
	// ChunksChecked is the total number of persisted chunks examined
	ChunksChecked int
	// Missing is the number of chunks that had no vector entry
	Missing int
	// Drifted is the number of chunks whose vector carried stale content
	Drifted int
	// Repaired is the number of vectors re-embedded and upserted
	Repaired int
}

// Sweeper finds transcript chunks whose vector entries are missing or stale
// and repairs them. The indexing pipeline writes chunks before vectors, so a
// crash between the two writes leaves chunks unindexed; the sweep closes
// that gap. Drift is detected by comparing the chunk's content hash against
// a hash of the content stored in vector metadata.
type Sweeper struct {
	chunks   storage.ChunkRepository
	meetings storage.MeetingRepository
	vectors  storage.VectorIndex
	embedder ai.Embedder
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewSweeper creates a reconciliation sweeper.
// progress: where to write progress output (typically os.Stderr)
func NewSweeper(chunks storage.ChunkRepository, meetings storage.MeetingRepository, vectors storage.VectorIndex, embedder ai.Embedder, config *Config, progress io.Writer) (*Sweeper, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if meetings == nil {
		return nil, ErrMeetingRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Sweeper{
		chunks:   chunks,
		meetings: meetings,
		vectors:  vectors,
		embedder: embedder,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "reconcile"),
	}, nil
}

// Run sweeps every meeting, repairing vectors as it goes. Meetings are
// processed concurrently; a failure in one meeting does not stop the others,
// and all failures are joined into the returned error.
func (s *Sweeper) Run(ctx context.Context) (*Report, error) {
	meetings, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	report := &Report{}
	if len(meetings) == 0 {
		fmt.Fprintf(s.progress, "No meetings found (0 meetings)\n")
		return report, nil
	}

	fmt.Fprintf(s.progress, "Starting reconciliation of %d meetings (pool size: %d)\n",
		len(meetings), s.config.PoolSize)

	tracker := NewProgressTracker(s.progress, len(meetings), s.config.ReportInterval)
	tracker.Start()

	pool, err := ants.NewPool(s.config.PoolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		sweepErrs []error
	)

	for _, meeting := range meetings {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			checked, missing, drifted, repaired, err := s.sweepMeeting(ctx, meeting)

			mu.Lock()
			report.MeetingsSwept++
			report.ChunksChecked += checked
			report.Missing += missing
			report.Drifted += drifted
			report.Repaired += repaired
			if err != nil {
				sweepErrs = append(sweepErrs,
					fmt.Errorf("meeting %s: %w", meeting.ID, err))
			}
			mu.Unlock()

			tracker.Increment(1)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			sweepErrs = append(sweepErrs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(s.progress, "Reconciliation complete. Swept %d meetings in %v, repaired %d vectors\n",
		report.MeetingsSwept, elapsed.Round(time.Second), report.Repaired)

	return report, errors.Join(sweepErrs...)
}

// sweepMeeting examines one meeting's chunks against the vector index and
// re-embeds any whose vectors are missing or stale.
func (s *Sweeper) sweepMeeting(ctx context.Context, meeting *core.Meeting) (checked, missing, drifted, repaired int, err error) {
	chunks, err := s.chunks.GetTranscriptChunks(ctx, meeting.ID)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to load chunks: %w", err)
	}
	checked = len(chunks)
	if checked == 0 {
		return 0, 0, 0, 0, nil
	}

	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.VectorID
	}

	entries, err := s.vectors.FetchVectors(ctx, ids...)
	if err != nil {
		return checked, 0, 0, 0, fmt.Errorf("failed to fetch vectors: %w", err)
	}

	var stale []*core.TranscriptChunk
	for _, chunk := range chunks {
		entry, ok := entries[chunk.VectorID]
		if !ok {
			missing++
			stale = append(stale, chunk)
			continue
		}
		if core.ContentHash(entry.Metadata.Content) != chunk.ContentHash {
			drifted++
			stale = append(stale, chunk)
		}
	}

	if len(stale) == 0 {
		return checked, 0, 0, 0, nil
	}

	s.logger.Info("repairing vectors",
		"meetingID", meeting.ID, "missing", missing, "drifted", drifted)

	texts := make([]string, len(stale))
	for i, chunk := range stale {
		texts[i] = chunk.Content
	}

	var embeddings [][]float32
	err = RetryWithBackoff(ctx, func() error {
		var embErr error
		embeddings, embErr = s.embedder.EmbedTexts(ctx, texts)
		return embErr
	}, s.config.MaxRetries, s.config.RetryDelay)
	if err != nil {
		return checked, missing, drifted, 0,
			fmt.Errorf("failed to generate embeddings after %d attempts: %w", s.config.MaxRetries, err)
	}
	if len(embeddings) != len(stale) {
		return checked, missing, drifted, 0,
			fmt.Errorf("embedding count mismatch: expected %d, got %d", len(stale), len(embeddings))
	}

	title := meeting.Title
	if title == "" {
		title = "Untitled Meeting"
	}

	repairs := make([]*core.VectorEntry, len(stale))
	for i, chunk := range stale {
		speaker := chunk.SpeakerName
		if speaker == "" {
			speaker = transcript.ExtractSpeaker(chunk.Content)
			if speaker == "" {
				speaker = "Unknown"
			}
		}
		repairs[i] = &core.VectorEntry{
			ID:     chunk.VectorID,
			Values: embeddings[i],
			Metadata: core.VectorMetadata{
				MeetingID:    chunk.MeetingID,
				UserID:       meeting.UserID,
				ChunkIndex:   chunk.ChunkIndex,
				Content:      chunk.Content,
				SpeakerName:  speaker,
				MeetingTitle: title,
			},
		}
	}

	if err := s.vectors.UpsertVectors(ctx, repairs...); err != nil {
		return checked, missing, drifted, 0, err
	}

	return checked, missing, drifted, len(repairs), nil
}
