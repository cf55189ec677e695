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

// Package intent routes incoming questions between conversational answering
// and structured database lookup.
//
// A single completion call does both jobs: the model either answers a general
// engineering question directly, or emits the routing sentinel when the
// question asks for database records. The sentinel is matched exactly, so a
// model response that merely mentions it is still treated as a direct answer.
package intent
