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

// Package sqlgen turns natural-language questions into read-only SQL.
//
// One completion call does the work: the prompt carries the tenant schema,
// the abbreviation glossary, and the single closest retrieval example, plus
// a rule block that pins down join paths, mandatory filters, and aliasing
// for the transmission work order domain. The model's response then passes
// through Sanitize, which strips markdown framing and trailing prose, and a
// keyword check that blanks out anything that is not a plain SELECT.
package sqlgen
