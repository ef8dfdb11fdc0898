package ai

// Role identifies the author of a chat message.
type Role int

const (
	// RoleUser represents the querying user.
	RoleUser Role = iota + 1
	// RoleAssistant represents the model.
	RoleAssistant
)

// Message is a single role-tagged turn in a generation request.
// The chat service builds a fixed scaffold of these around the retrieved
// context; it is not a running conversation with history.
type Message struct {
	Role    Role
	Content string
}
