package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted types. The encoding is a plain field
// concatenation in declaration order; time fields are encoded as Unix
// microseconds. Changing field order or adding fields is a breaking change
// for existing databases.

// MeetingMUS serializes Meeting values.
var MeetingMUS = meetingMUS{}

// TranscriptChunkMUS serializes TranscriptChunk values.
var TranscriptChunkMUS = transcriptChunkMUS{}

// VectorEntryMUS serializes VectorEntry values.
var VectorEntryMUS = vectorEntryMUS{}

var float32SliceMUS = ord.NewSliceSer[float32](varint.Float32)

type meetingMUS struct{}

func (s meetingMUS) Marshal(v Meeting, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.UserID, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += varint.Int64.Marshal(v.StartedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (s meetingMUS) Unmarshal(bs []byte) (v Meeting, n int, err error) {
	var n1 int
	if v.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.UserID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.StartedAt = time.UnixMicro(micros).UTC()
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.InsertedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}

func (s meetingMUS) Size(v Meeting) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.UserID)
	size += ord.String.Size(v.Title)
	size += varint.Int64.Size(v.StartedAt.UnixMicro())
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	return size
}

type transcriptChunkMUS struct{}

func (s transcriptChunkMUS) Marshal(v TranscriptChunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.MeetingID, bs)
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.SpeakerName, bs[n:])
	n += ord.String.Marshal(v.VectorID, bs[n:])
	n += varint.Uint64.Marshal(v.ContentHash, bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (s transcriptChunkMUS) Unmarshal(bs []byte) (v TranscriptChunk, n int, err error) {
	var n1 int
	if v.MeetingID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SpeakerName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.VectorID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ContentHash, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.InsertedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}

func (s transcriptChunkMUS) Size(v TranscriptChunk) (size int) {
	size = ord.String.Size(v.MeetingID)
	size += varint.Int.Size(v.ChunkIndex)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.SpeakerName)
	size += ord.String.Size(v.VectorID)
	size += varint.Uint64.Size(v.ContentHash)
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	return size
}

type vectorEntryMUS struct{}

func (s vectorEntryMUS) Marshal(v VectorEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += float32SliceMUS.Marshal(v.Values, bs[n:])
	n += ord.String.Marshal(v.Metadata.MeetingID, bs[n:])
	n += ord.String.Marshal(v.Metadata.UserID, bs[n:])
	n += varint.Int.Marshal(v.Metadata.ChunkIndex, bs[n:])
	n += ord.String.Marshal(v.Metadata.Content, bs[n:])
	n += ord.String.Marshal(v.Metadata.SpeakerName, bs[n:])
	n += ord.String.Marshal(v.Metadata.MeetingTitle, bs[n:])
	return n
}

func (s vectorEntryMUS) Unmarshal(bs []byte) (v VectorEntry, n int, err error) {
	var n1 int
	if v.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Values, n1, err = float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata.MeetingID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata.UserID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata.SpeakerName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Metadata.MeetingTitle, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s vectorEntryMUS) Size(v VectorEntry) (size int) {
	size = ord.String.Size(v.ID)
	size += float32SliceMUS.Size(v.Values)
	size += ord.String.Size(v.Metadata.MeetingID)
	size += ord.String.Size(v.Metadata.UserID)
	size += varint.Int.Size(v.Metadata.ChunkIndex)
	size += ord.String.Size(v.Metadata.Content)
	size += ord.String.Size(v.Metadata.SpeakerName)
	size += ord.String.Size(v.Metadata.MeetingTitle)
	return size
}
