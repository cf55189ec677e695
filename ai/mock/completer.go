package mock

import (
	"context"
	"sync"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, responses are taken from the queued Responses, then Default.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// Default is returned when no queued response or CompleteFunc applies.
	Default string

	mu        sync.Mutex
	responses []string
	prompts   []string
	callCount int
}

// NewMockCompleter creates a mock completer with empty default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Enqueue appends responses returned by subsequent Complete calls in order.
func (m *MockCompleter) Enqueue(responses ...string) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
	return m
}

// Complete records the prompt and returns the next configured response.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	fn := m.CompleteFunc
	var queued string
	var hasQueued bool
	if fn == nil && len(m.responses) > 0 {
		queued, hasQueued = m.responses[0], true
		m.responses = m.responses[1:]
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	if hasQueued {
		return queued, nil
	}
	return m.Default, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns the prompts received so far, in call order.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// LastPrompt returns the most recent prompt, or "" when none was received.
func (m *MockCompleter) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears recorded calls, queued responses, and custom functions.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
	m.responses = nil
	m.CompleteFunc = nil
	m.Default = ""
}
