package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
)

// MeetingRepository implements storage.MeetingRepository for BadgerDB.
type MeetingRepository struct {
	backend *Backend
}

var _ storage.MeetingRepository = (*MeetingRepository)(nil)

// NewMeetingRepository creates a new MeetingRepository.
func NewMeetingRepository(backend *Backend) *MeetingRepository {
	return &MeetingRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *MeetingRepository) Close() error {
	return nil
}

// PutMeeting inserts or replaces a meeting record.
func (r *MeetingRepository) PutMeeting(ctx context.Context, meeting *core.Meeting) error {
	if err := core.ValidateMeeting(meeting); err != nil {
		return err
	}

	if meeting.InsertedAt.IsZero() {
		meeting.InsertedAt = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeMeetingKey(meeting.ID), storage.MarshalMeeting(meeting)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetMeeting retrieves a meeting by id.
func (r *MeetingRepository) GetMeeting(ctx context.Context, meetingID string) (*core.Meeting, error) {
	var meeting *core.Meeting

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMeetingKey(meetingID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			meeting, err = storage.UnmarshalMeeting(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return meeting, nil
}

// ListMeetings retrieves all meetings, ordered by id.
func (r *MeetingRepository) ListMeetings(ctx context.Context) ([]*core.Meeting, error) {
	meetings := []*core.Meeting{}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeMeetingScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				meeting, err := storage.UnmarshalMeeting(val)
				if err != nil {
					return err
				}
				meetings = append(meetings, meeting)
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
	return meetings, nil
}

// DeleteMeeting removes a meeting, its transcript chunks, and their vector
// entries in one transaction. Vector ids are derivable from the chunk rows,
// so the cascade leaves no orphaned vectors behind.
func (r *MeetingRepository) DeleteMeeting(ctx context.Context, meetingID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMeetingKey(meetingID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var meeting *core.Meeting
		err = item.Value(func(val []byte) error {
			meeting, err = storage.UnmarshalMeeting(val)
			return err
		})
		if err != nil {
			return err
		}

		// Derive and remove the vector entries before the chunk rows go.
		chunkOpts := badger.DefaultIteratorOptions
		chunkOpts.Prefix = makeChunkScanPrefix(meetingID)
		chunkOpts.PrefetchValues = false

		var vectorIDs []string
		iter := tx.NewIterator(chunkOpts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// The chunk index is the trailing 8 BigEndian bytes of the key.
			idx := decodeChunkIndex(key)
			vectorIDs = append(vectorIDs, core.VectorID(meetingID, idx))
		}
		iter.Close()

		for _, vectorID := range vectorIDs {
			if err := tx.Delete(makeVectorKey(vectorID)); err != nil {
				return err
			}
			if err := tx.Delete(makeVectorUserKey(meeting.UserID, vectorID)); err != nil {
				return err
			}
		}

		if err := deleteChunksInTx(tx, meetingID); err != nil {
			return err
		}

		if err := tx.Delete(makeMeetingKey(meetingID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
