package transcript

import "errors"

var (
	// ErrEmptyTranscript is returned when a transcript is empty or
	// whitespace-only after trimming.
	ErrEmptyTranscript = errors.New("empty transcript")
)
