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

package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quadrantai/woqa/ai"
	"github.com/quadrantai/woqa/core"
)

// routingSentinel is the exact token the model returns when a question must
// be answered from the database instead of conversationally.
const routingSentinel = "SQL-Only"

const classifyPromptTemplate = `
You are an expert assistant for work order and pipeline engineering questions.
Today's date is %s and the current year is %d.

Instructions:
- If the user's question is a general question (greetings, what's the date, general engineering, design calculations, standards, formulas, or topics about pipe properties, MAOP, wall thickness, steel grade, ASME codes, etc.), answer it directly and concisely.
- If the user's question is about the weather, and you cannot access real-time weather data, provide a typical or seasonal weather summary for the location and time of year, and mention that you cannot access real-time updates. For example: "I'm unable to access real-time weather updates, but [city] in [month] typically experiences... If you need the latest conditions, check a reliable weather website or app."
- If the question is specifically about database records (such as work order numbers, weld records, asset IDs, chemical/mechanical properties, or requests to look up, list, or retrieve information from the database), do NOT answer, just return: SQL-Only
User Question:
%s

Answer or Routing intent:
`

// Classifier decides whether a question is answered conversationally or
// routed to query synthesis.
type Classifier struct {
	completer ai.Completer
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithClock sets the time source used to stamp the prompt with the current
// date. Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) error {
		if now == nil {
			now = time.Now
		}
		c.now = now
		return nil
	}
}

// NewClassifier creates a new intent classifier.
func NewClassifier(completer ai.Completer, opts ...Option) (*Classifier, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	c := &Classifier{
		completer: completer,
		now:       time.Now,
		logger:    slog.Default().With("component", "intent-classifier"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Classify routes a question. Returns core.StructuredLookup when the model
// emits the routing sentinel, otherwise core.DirectAnswer carrying the
// model's reply verbatim. Blank questions are still sent to the model, which
// judges them like any other input.
func (c *Classifier) Classify(ctx context.Context, question *core.Question) (core.Intent, error) {
	if question == nil {
		return nil, ErrEmptyQuestion
	}

	response, err := c.completer.Complete(ctx, c.buildPrompt(question))
	if err != nil {
		c.logger.Error("intent classification failed", "err", err)
		return nil, err
	}

	content := strings.TrimSpace(response)
	if content == routingSentinel {
		c.logger.Debug("question routed to structured lookup")
		return core.StructuredLookup{}, nil
	}

	c.logger.Debug("question answered directly")
	return core.DirectAnswer{Text: content}, nil
}

func (c *Classifier) buildPrompt(question *core.Question) string {
	now := c.now()
	return fmt.Sprintf(classifyPromptTemplate,
		now.Format("January 2, 2006"),
		now.Year(),
		question.FullText())
}
