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

// Package pipeline orchestrates one question through to one answer.
//
// The run is a small state machine: classification first, then either a
// direct conversational answer or the structured path of synthesis,
// execution, and formatting, with a document escalation detour when the
// results carry a PDF payload. Every run produces exactly one envelope.
// Database failures end the run with an error envelope that still carries
// the attempted SQL; failures before any SQL exists (classification,
// synthesis) are returned as Go errors instead, since there is nothing
// useful to put in an envelope.
package pipeline
