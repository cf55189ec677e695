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


// Package knowledge holds the static context handed to the language model
// on every request: the database schema text and the abbreviation glossary.
//
// A Knowledge value is loaded once at startup and never mutated afterwards,
// so it is safe for unsynchronized concurrent reads from any number of
// in-flight requests.
package knowledge

import (
	_ "embed"
	"errors"
	"os"
	"strings"
)

//go:embed schema/schema.txt
var bundledSchema string

// ErrEmptySchema indicates the schema file contained no usable text.
var ErrEmptySchema = errors.New("knowledge: schema file is empty")

// Knowledge is the immutable static context for query generation.
type Knowledge struct {
	schema        string
	abbreviations []Abbreviation
}

// Load reads the schema text from the given file and pairs it with the
// built-in abbreviation glossary. Called once during initialization.
func Load(schemaPath string) (*Knowledge, error) {
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, err
	}
	return New(string(data))
}

// LoadBundled pairs the schema compiled into the binary with the built-in
// glossary. Deployments with a newer schema use Load instead.
func LoadBundled() (*Knowledge, error) {
	return New(bundledSchema)
}

// New builds a Knowledge from schema text already in memory.
func New(schema string) (*Knowledge, error) {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return nil, ErrEmptySchema
	}
	return &Knowledge{
		schema:        schema,
		abbreviations: abbreviations,
	}, nil
}

// Schema returns the full schema text.
func (k *Knowledge) Schema() string {
	return k.schema
}

// Abbreviations returns the glossary in its stable order.
func (k *Knowledge) Abbreviations() []Abbreviation {
	return k.abbreviations
}

// Glossary renders the abbreviation glossary as the bullet list embedded
// in generation prompts, one "- ABBR: meaning" line per entry.
func (k *Knowledge) Glossary() string {
	var b strings.Builder
	for _, a := range k.abbreviations {
		b.WriteString("- ")
		b.WriteString(a.Abbr)
		b.WriteString(": ")
		b.WriteString(a.Meaning)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
