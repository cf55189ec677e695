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

// Package document answers questions from material test report PDFs.
//
// Some lookups resolve to a document rather than a table: the query returns
// a BinaryString column holding a base64-encoded PDF. This package decodes
// the payload, pulls the text out of it (digital extraction first, OCR when
// the PDF is a scan), and asks the model to answer from the extracted text.
// Extraction is best-effort throughout; any failure yields empty text and
// the caller falls back to tabular formatting.
package document
