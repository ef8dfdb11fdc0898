package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) *ChunkRepository {
	return &ChunkRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *ChunkRepository) Close() error {
	return nil
}

// AddTranscriptChunks persists chunks in one bulk write, skipping any whose
// (MeetingID, ChunkIndex) pair already exists. The skip is what makes
// re-running the indexing pipeline for a meeting idempotent at the
// persistence layer.
func (r *ChunkRepository) AddTranscriptChunks(ctx context.Context, chunks ...*core.TranscriptChunk) (int, error) {
	inserted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if err := core.ValidateTranscriptChunk(chunk); err != nil {
				return err
			}

			key := makeChunkKey(chunk.MeetingID, chunk.ChunkIndex)
			_, err := tx.Get(key)
			if err == nil {
				// Already indexed; unique constraint skip.
				continue
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = time.Now().UTC()
			}

			if err := tx.Set(key, storage.MarshalTranscriptChunk(chunk)); err != nil {
				return err
			}
			inserted++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetTranscriptChunks retrieves all chunks for a meeting in chunk index order.
func (r *ChunkRepository) GetTranscriptChunks(ctx context.Context, meetingID string) ([]*core.TranscriptChunk, error) {
	chunks := []*core.TranscriptChunk{}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix(meetingID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				chunk, err := storage.UnmarshalTranscriptChunk(val)
				if err != nil {
					return err
				}
				chunks = append(chunks, chunk)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// DeleteTranscriptChunks removes all chunks for a meeting.
func (r *ChunkRepository) DeleteTranscriptChunks(ctx context.Context, meetingID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteChunksInTx(tx, meetingID); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// deleteChunksInTx removes a meeting's chunk records within an open
// transaction. Shared with the meeting cascade delete.
func deleteChunksInTx(tx *badger.Txn, meetingID string) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeChunkScanPrefix(meetingID)
	opts.PrefetchValues = false

	var keys [][]byte
	iter := tx.NewIterator(opts)
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	iter.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
