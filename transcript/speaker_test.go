package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSpeaker(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple label", "Alice: We ship Friday.", "Alice"},
		{"multi line uses first line", "Alice: We ship Friday.\nBob: I will test today.", "Alice"},
		{"two word name", "Mary Jane: status update", "Mary Jane"},
		{"no colon", "just some untagged text", ""},
		{"colon later in line", "Note - action items: none", "Note - action items"},
		{"leading whitespace around name", "  Alice : hello", "Alice"},
		{"empty label", ": orphaned text", ""},
		{"empty content", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSpeaker(tt.content))
		})
	}
}
