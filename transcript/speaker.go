package transcript

import "strings"

// ExtractSpeaker parses the leading "Speaker:" label from a chunk's first
// line. Returns "" if the first line has no colon-delimited prefix or the
// prefix is blank. The format is a fixed internal convention, not an
// external format: absent colon means unknown speaker, nothing more.
func ExtractSpeaker(chunkContent string) string {
	firstLine := chunkContent
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}

	name, _, found := strings.Cut(firstLine, ":")
	if !found {
		return ""
	}

	return strings.TrimSpace(name)
}
