package chat

import (
	"fmt"
	"strings"

	"github.com/poiesic/recallit/ai"
	"github.com/poiesic/recallit/core"
)

// meetingSystemPrompt constrains the model to one meeting's content. The
// prompt contract is the only grounding mechanism; answers are not verified
// against the context afterwards.
func meetingSystemPrompt(title, date string) string {
	return fmt.Sprintf(`You are an assistant answering questions about the meeting "%s" held on %s.
Answer using only the meeting content supplied by the user.
If the answer is not contained in that content, say so explicitly instead of guessing.`, title, date)
}

// allMeetingsSystemPrompt constrains the model to the supplied excerpts from
// any number of the user's meetings and asks it to attribute facts to their
// meeting.
func allMeetingsSystemPrompt() string {
	return `You are an assistant answering questions about the user's meetings.
Answer using only the meeting excerpts supplied by the user. Each excerpt names the meeting it came from; cite that meeting when you state a fact.
If the answer is not contained in the excerpts, say so explicitly instead of guessing.`
}

// scaffoldMessages builds the fixed three-turn message sequence: a user turn
// presenting the context, a canned assistant acknowledgment, then the actual
// question. Each call is independent; this is not conversation history.
func scaffoldMessages(context, question string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleUser, Content: "Here is the relevant meeting content:\n\n" + context},
		{Role: ai.RoleAssistant, Content: "I have read the meeting content and will answer based only on it."},
		{Role: ai.RoleUser, Content: question},
	}
}

// buildMeetingContext renders retrieval results for a single meeting as
// speaker-attributed lines joined by blank lines.
func buildMeetingContext(results []*core.RetrievalResult) string {
	lines := make([]string, len(results))
	for i, result := range results {
		lines[i] = fmt.Sprintf("%s: %s", result.SpeakerName, result.Content)
	}
	return strings.Join(lines, "\n\n")
}

// buildAllMeetingsContext renders cross-meeting results with a meeting title
// header per line and a divider between chunks from different meetings.
func buildAllMeetingsContext(results []*core.RetrievalResult) string {
	var sb strings.Builder
	for i, result := range results {
		if i > 0 {
			if results[i-1].MeetingID != result.MeetingID {
				sb.WriteString("\n\n---\n\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(fmt.Sprintf("Meeting: %s\n%s: %s",
			result.MeetingTitle, result.SpeakerName, result.Content))
	}
	return sb.String()
}
