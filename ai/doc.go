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


// Package ai provides abstractions for the AI services used by the
// question-answering pipeline.
//
// Two capabilities are defined:
//
//   - Completer: single-prompt language-model invocation
//   - Embedder: text embeddings for example retrieval
//
// The Provider interface aggregates both for initialization and lifecycle
// management. Pipeline stages depend only on these interfaces, never on a
// concrete vendor client.
//
// # Implementation Packages
//
//   - ai/openai: production implementation backed by Azure OpenAI
//   - ai/mock: deterministic test doubles with injectable behavior
//
// Production constructors return interface types to keep callers decoupled
// from the vendor client; mock constructors return concrete types so tests
// can inject behavior and assert call counts.
package ai
