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

// Package answer renders query results into a user-facing reply.
//
// The model sees the full result table and returns strict JSON: a single
// {"answer": ...} object for one row or for empty results, and an array of
// column-keyed objects for many rows. Model output being what it is, the
// response goes through fence stripping and key repair before parsing, and
// a response that still will not parse is returned as plain text rather
// than dropped.
package answer
