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


package mock

import "github.com/poiesic/supportai/ai"

// MockProvider is a test double for ai.Provider.
// It wraps a mock text generator.
type MockProvider struct {
	generator  *MockTextGenerator
	configured bool
}

// NewMockProvider creates a new mock provider with a default mock generator.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockGenerator() to access the concrete type for test assertions.
func NewMockProvider() ai.Provider {
	return NewMockProviderWithGenerator(NewMockTextGenerator())
}

// NewMockProviderWithGenerator creates a mock provider around a custom mock generator.
func NewMockProviderWithGenerator(generator *MockTextGenerator) ai.Provider {
	return &MockProvider{
		generator:  generator,
		configured: true,
	}
}

// NewUnconfiguredProvider creates a provider that behaves as if no credential
// was supplied: TextGenerator returns nil. The underlying mock is still
// reachable through GetMockGenerator so tests can assert it was never called.
func NewUnconfiguredProvider() ai.Provider {
	return &MockProvider{generator: NewMockTextGenerator()}
}

// TextGenerator returns the mock generator, or nil when unconfigured.
func (p *MockProvider) TextGenerator() ai.TextGenerator {
	if !p.configured {
		return nil
	}
	return p.generator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockGenerator returns the underlying mock generator for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockGenerator() *MockTextGenerator {
	return p.generator
}
