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


package core

import "fmt"

// ValidateMeeting validates a Meeting according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - UserID must not be empty
//
// NOT validated (best-effort prompt framing data):
//   - Title (empty falls back to "Untitled Meeting" at prompt time)
//   - StartedAt (zero falls back to "Unknown" at prompt time)
func ValidateMeeting(meeting *Meeting) error {
	if meeting == nil {
		return fmt.Errorf("%w: meeting is nil", ErrInvalidMeeting)
	}

	if meeting.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMeeting, ErrEmptyMeetingID)
	}

	if meeting.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMeeting, ErrEmptyUserID)
	}

	return nil
}

// ValidateTranscriptChunk validates a TranscriptChunk according to domain rules.
//
// Validation rules:
//   - MeetingID must not be empty
//   - ChunkIndex must not be negative
//   - Content must not be empty
//   - VectorID must equal VectorID(MeetingID, ChunkIndex)
//
// NOT validated:
//   - SpeakerName (empty means no speaker prefix was found)
//   - ContentHash (0 is a legal, if unlikely, BLAKE2b output)
func ValidateTranscriptChunk(chunk *TranscriptChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.MeetingID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyMeetingID)
	}

	if chunk.ChunkIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkIndex)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.VectorID != VectorID(chunk.MeetingID, chunk.ChunkIndex) {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrVectorIDMismatch)
	}

	return nil
}
