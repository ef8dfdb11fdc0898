package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
)

// VectorIndex implements storage.VectorIndex for BadgerDB.
//
// Entries are stored under their vector id together with a per-user index
// key, and queries scan only the querying user's index prefix. Similarity is
// the dot product, which equals cosine similarity for normalized embeddings.
type VectorIndex struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a new VectorIndex.
func NewVectorIndex(backend *Backend) *VectorIndex {
	return &VectorIndex{
		backend: backend,
		logger:  slog.Default().With("component", "vector-index"),
	}
}

// Close is a no-op; the index holds no resources beyond the backend.
func (v *VectorIndex) Close() error {
	return nil
}

// UpsertVectors writes entries in one transaction. An existing id is
// replaced, not duplicated.
func (v *VectorIndex) UpsertVectors(ctx context.Context, entries ...*core.VectorEntry) error {
	err := v.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.ID == "" {
				return fmt.Errorf("entry id required")
			}
			if entry.Metadata.UserID == "" {
				return fmt.Errorf("entry user id required")
			}

			if err := tx.Set(makeVectorKey(entry.ID), storage.MarshalVectorEntry(entry)); err != nil {
				return err
			}
			if err := tx.Set(makeVectorUserKey(entry.Metadata.UserID, entry.ID), []byte(entry.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		v.logger.Error("vector upsert failed", "entries", len(entries), "err", err)
		return fmt.Errorf("%w: %w", storage.ErrIndexWrite, err)
	}
	return nil
}

// FetchVectors retrieves entries by id; missing ids are absent from the
// result map.
func (v *VectorIndex) FetchVectors(ctx context.Context, ids ...string) (map[string]*core.VectorEntry, error) {
	found := make(map[string]*core.VectorEntry, len(ids))

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeVectorKey(id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				entry, err := storage.UnmarshalVectorEntry(val)
				if err != nil {
					return err
				}
				found[id] = entry
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrIndexQuery, err)
	}
	return found, nil
}

// QueryVectors returns up to topK of the user's entries most similar to the
// query vector, ordered by descending score. The user filter is mandatory;
// a meeting filter narrows the scan further. An empty result is not an error.
func (v *VectorIndex) QueryVectors(ctx context.Context, vector []float32, filter storage.Filter, topK int) ([]*core.RetrievalResult, error) {
	if filter.UserID == "" {
		return nil, fmt.Errorf("%w: user filter is required", storage.ErrInvalidQuery)
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: topK must be positive", storage.ErrInvalidQuery)
	}

	type scored struct {
		entry *core.VectorEntry
		score float32
	}
	var matches []scored

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorUserScanPrefix(filter.UserID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var vectorID string
			err := iter.Item().Value(func(val []byte) error {
				vectorID = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			item, err := tx.Get(makeVectorKey(vectorID))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					// Stale index key; the record is gone.
					continue
				}
				return err
			}

			var entry *core.VectorEntry
			err = item.Value(func(val []byte) error {
				entry, err = storage.UnmarshalVectorEntry(val)
				return err
			})
			if err != nil {
				return err
			}

			// The metadata is authoritative for the tenant boundary; the
			// index key alone is not trusted.
			if entry.Metadata.UserID != filter.UserID {
				continue
			}
			if filter.MeetingID != "" && entry.Metadata.MeetingID != filter.MeetingID {
				continue
			}

			matches = append(matches, scored{entry: entry, score: dotProduct(vector, entry.Values)})
		}
		return nil
	}, false)

	if err != nil {
		v.logger.Error("vector query failed", "userID", filter.UserID, "err", err)
		return nil, fmt.Errorf("%w: %w", storage.ErrIndexQuery, err)
	}

	// Sort by similarity descending
	slices.SortFunc(matches, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return 0
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	results := make([]*core.RetrievalResult, len(matches))
	for i, match := range matches {
		results[i] = &core.RetrievalResult{
			Content:      match.entry.Metadata.Content,
			SpeakerName:  match.entry.Metadata.SpeakerName,
			MeetingID:    match.entry.Metadata.MeetingID,
			MeetingTitle: match.entry.Metadata.MeetingTitle,
			Confidence:   match.score,
		}
	}
	return results, nil
}

// DeleteVectors removes entries and their tenant index keys by id.
// Missing ids are ignored.
func (v *VectorIndex) DeleteVectors(ctx context.Context, ids ...string) error {
	err := v.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeVectorKey(id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}

			var entry *core.VectorEntry
			err = item.Value(func(val []byte) error {
				entry, err = storage.UnmarshalVectorEntry(val)
				return err
			})
			if err != nil {
				return err
			}

			if err := tx.Delete(makeVectorUserKey(entry.Metadata.UserID, id)); err != nil {
				return err
			}
			if err := tx.Delete(makeVectorKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrIndexWrite, err)
	}
	return nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
