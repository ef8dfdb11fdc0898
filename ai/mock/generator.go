package mock

import (
	"context"
	"sync"

	"github.com/poiesic/recallit/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via a function field and records the
// prompts it was invoked with.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a canned answer.
	GenerateFunc func(ctx context.Context, system string, messages []ai.Message) (string, error)

	// Answer is the canned response returned when GenerateFunc is nil.
	Answer string

	mu        sync.Mutex
	callCount int
	systems   []string
	calls     [][]ai.Message
}

// NewMockGenerator creates a mock generator with a canned answer.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Answer: "mock answer"}
}

// Generate records the invocation and returns the injected or canned answer.
func (m *MockGenerator) Generate(ctx context.Context, system string, messages []ai.Message) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.systems = append(m.systems, system)
	m.calls = append(m.calls, messages)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, messages)
	}

	return m.Answer, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastSystem returns the system prompt from the most recent call,
// or "" if Generate has not been called.
func (m *MockGenerator) LastSystem() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.systems) == 0 {
		return ""
	}
	return m.systems[len(m.systems)-1]
}

// LastMessages returns the message sequence from the most recent call,
// or nil if Generate has not been called.
func (m *MockGenerator) LastMessages() []ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.systems = nil
	m.calls = nil
	m.GenerateFunc = nil
	m.Answer = "mock answer"
}
