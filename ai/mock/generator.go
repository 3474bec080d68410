package mock

import (
	"context"
	"fmt"
	"sync"
)

// MockTextGenerator is a test double for ai.TextGenerator.
// It allows custom behavior injection via function fields.
type MockTextGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, echoes a deterministic answer derived from the prompt.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	mu        sync.Mutex
	callCount int
	prompts   []string
}

// NewMockTextGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{}
}

// WithGenerateTextFunc sets the function used by GenerateText and returns the mock.
func (m *MockTextGenerator) WithGenerateTextFunc(fn func(ctx context.Context, prompt string) (string, error)) *MockTextGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateTextFunc = fn
	return m
}

// GenerateText records the prompt and returns the injected or default answer.
func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	fn := m.GenerateTextFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}

	return fmt.Sprintf("mock answer (%d chars of prompt)", len(prompt)), nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockTextGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns a copy of every prompt received, in call order.
func (m *MockTextGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Reset clears the call count, recorded prompts and injected behavior.
func (m *MockTextGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
	m.GenerateTextFunc = nil
}
