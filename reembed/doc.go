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

// Package reembed regenerates the vectors of every stored retrieval example.
//
// Switching to a different embedding deployment invalidates the vectors in
// the example index, since similarity scores are only meaningful between
// vectors produced by the same model. The Reembedder walks the full index in
// batches, embeds each example's content with the current embedder, and
// writes the refreshed records back in place.
package reembed
