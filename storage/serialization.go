// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/poiesic/recallit/core"
)

// MarshalMeeting serializes a Meeting to bytes.
func MarshalMeeting(meeting *core.Meeting) []byte {
	buf := make([]byte, core.MeetingMUS.Size(*meeting))
	core.MeetingMUS.Marshal(*meeting, buf)
	return buf
}

// UnmarshalMeeting deserializes a Meeting from bytes.
func UnmarshalMeeting(data []byte) (*core.Meeting, error) {
	meeting, _, err := core.MeetingMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// MarshalTranscriptChunk serializes a TranscriptChunk to bytes.
func MarshalTranscriptChunk(chunk *core.TranscriptChunk) []byte {
	buf := make([]byte, core.TranscriptChunkMUS.Size(*chunk))
	core.TranscriptChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalTranscriptChunk deserializes a TranscriptChunk from bytes.
func UnmarshalTranscriptChunk(data []byte) (*core.TranscriptChunk, error) {
	chunk, _, err := core.TranscriptChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalVectorEntry serializes a VectorEntry to bytes.
func MarshalVectorEntry(entry *core.VectorEntry) []byte {
	buf := make([]byte, core.VectorEntryMUS.Size(*entry))
	core.VectorEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalVectorEntry deserializes a VectorEntry from bytes.
func UnmarshalVectorEntry(data []byte) (*core.VectorEntry, error) {
	entry, _, err := core.VectorEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
