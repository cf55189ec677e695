// Copyright 2025 Quadrant Analytics
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

import "github.com/quadrantai/woqa/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock completer and embedder instances.
type MockProvider struct {
	completer *MockCompleter
	embedder  *MockEmbedder
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use GetMockCompleter()/GetMockEmbedder() to access concrete
// types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		completer: NewMockCompleter(),
		embedder:  NewMockEmbedder(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(completer *MockCompleter, embedder *MockEmbedder) ai.Provider {
	return &MockProvider{
		completer: completer,
		embedder:  embedder,
	}
}

// Completer returns the mock completer.
func (p *MockProvider) Completer() ai.Completer {
	return p.completer
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockCompleter returns the underlying mock completer for test assertions.
func (p *MockProvider) GetMockCompleter() *MockCompleter {
	return p.completer
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}
