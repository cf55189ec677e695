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

package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quadrantai/woqa/ai"
	"github.com/quadrantai/woqa/core"
)

const formatPromptTemplate = `
You are an assistant. The user asked: "%s"
The SQL generated was: %s
The raw results are below.

Columns: %s
Rows: %s

Return the results as JSON:
- Never truncate, omit, or summarize the results. Always show all rows returned after executing the SQL query, even if there are more than 100 rows.
- If there is only one row, DO NOT return the raw column/value mapping. Instead, generate a clear, user-friendly answer as a string and return it in the following format: {"answer": "<your answer here>"}. Do not use the column name as the key.
- If there are multiple rows, return a JSON array of objects, each with column names as keys.
- If there are no results, explain clearly as an answer to that user question, using the same {"answer": "..."} format.
- Do not add any commentary or extra text in the JSON response.
- If the results are single row, use clear formatting such as bullet points, lists, or short paragraphs to make the answer easy to read.

Example (multiple rows):
[
  {"TaskNum": "CE23/24-Hyb", "TaskDesc": "Inspecting the Condition of Exposed Pipe"},
  {"TaskNum": "CE31B-Hyb", "TaskDesc": "Installation of Pipe - Installing Pipe in a Ditch"}
]

Example (single row):
{"answer": "There are 134 welds in work order 100139423P2."}

Return only the JSON, nothing else.
`

// Formatter turns a materialized result set into the final answer value.
type Formatter struct {
	completer ai.Completer
	logger    *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFormatter creates a new result formatter.
func NewFormatter(completer ai.Completer, opts ...Option) (*Formatter, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	f := &Formatter{
		completer: completer,
		logger:    slog.Default().With("component", "result-formatter"),
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Format asks the model to render the result set as structured JSON and
// returns the parsed value. When the response does not parse even after
// repair, the trimmed raw text is returned instead: a readable but
// unstructured answer beats an error here.
func (f *Formatter) Format(ctx context.Context, question string, statement string, result *core.ResultSet) (any, error) {
	if result == nil {
		result = &core.ResultSet{}
	}

	response, err := f.completer.Complete(ctx, f.buildPrompt(question, statement, result))
	if err != nil {
		f.logger.Error("answer formatting failed", "err", err)
		return nil, err
	}

	return Parse(response, f.logger), nil
}

func (f *Formatter) buildPrompt(question, statement string, result *core.ResultSet) string {
	columns, err := json.Marshal(result.Columns)
	if err != nil {
		columns = []byte("[]")
	}
	rows, err := json.Marshal(result.Rows)
	if err != nil {
		rows = []byte("[]")
	}

	return fmt.Sprintf(formatPromptTemplate, question, statement, columns, rows)
}

// Parse interprets a model response as JSON, falling back to the raw text.
// Markdown fences are stripped and missing key quotes repaired first.
func Parse(response string, logger *slog.Logger) any {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var value any
	if err := json.Unmarshal([]byte(text), &value); err == nil {
		return value
	}

	repaired := repairJSON(text)
	if err := json.Unmarshal([]byte(repaired), &value); err == nil {
		return value
	}

	if logger != nil {
		logger.Warn("answer did not parse as JSON, returning raw text")
	}
	return text
}
