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

package pipeline

import (
	"context"
	"log/slog"

	"github.com/quadrantai/woqa/answer"
	"github.com/quadrantai/woqa/core"
	"github.com/quadrantai/woqa/document"
	"github.com/quadrantai/woqa/execution"
	"github.com/quadrantai/woqa/intent"
	"github.com/quadrantai/woqa/sqlgen"
)

// state tracks where a run is in its lifecycle. States advance strictly
// forward; every path terminates in stateDone with an envelope in hand.
type state int

const (
	stateStart state = iota
	stateClassified
	stateDirectAnswered
	stateSynthesized
	stateExecuted
	stateEscalated
	stateFormatted
	stateDone
)

// Pipeline wires the stages of a question run.
type Pipeline struct {
	classifier  *intent.Classifier
	synthesizer *sqlgen.Synthesizer
	runner      execution.Runner
	escalator   *document.Escalator
	formatter   *answer.Formatter
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithRunner enables SQL execution. Without one, structured questions stop
// after synthesis and return the generated SQL only.
func WithRunner(runner execution.Runner) Option {
	return func(p *Pipeline) error {
		p.runner = runner
		return nil
	}
}

// WithEscalator enables the document branch for results carrying a PDF
// payload.
func WithEscalator(escalator *document.Escalator) Option {
	return func(p *Pipeline) error {
		p.escalator = escalator
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// New creates a pipeline from its stages.
func New(
	classifier *intent.Classifier,
	synthesizer *sqlgen.Synthesizer,
	formatter *answer.Formatter,
	opts ...Option,
) (*Pipeline, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}
	if formatter == nil {
		return nil, ErrFormatterRequired
	}

	p := &Pipeline{
		classifier:  classifier,
		synthesizer: synthesizer,
		formatter:   formatter,
		logger:      slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// run carries the evolving artifacts of one question through the states.
type run struct {
	question *core.Question
	tenant   core.TenantContext
	intent   core.Intent
	query    *core.GeneratedQuery
	result   *core.ResultSet
	envelope *core.AnswerEnvelope
}

// Answer runs one question to completion and returns its envelope. A tenant
// context with an empty database name skips execution: the envelope then
// carries only the generated SQL, which is the original service's behavior
// for unauthenticated calls.
func (p *Pipeline) Answer(ctx context.Context, question *core.Question, tenant core.TenantContext) (*core.AnswerEnvelope, error) {
	r := &run{question: question, tenant: tenant}

	current := stateStart
	for current != stateDone {
		next, err := p.step(ctx, current, r)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return r.envelope, nil
}

func (p *Pipeline) step(ctx context.Context, current state, r *run) (state, error) {
	switch current {
	case stateStart:
		classified, err := p.classifier.Classify(ctx, r.question)
		if err != nil {
			return stateDone, err
		}
		r.intent = classified
		return stateClassified, nil

	case stateClassified:
		if direct, ok := r.intent.(core.DirectAnswer); ok {
			r.envelope = &core.AnswerEnvelope{
				Intent: r.intent.Tag(),
				Answer: direct.Text,
			}
			return stateDirectAnswered, nil
		}
		query, err := p.synthesizer.Synthesize(ctx, r.question)
		if err != nil {
			return stateDone, err
		}
		r.query = query
		return stateSynthesized, nil

	case stateDirectAnswered:
		return stateDone, nil

	case stateSynthesized:
		if p.runner == nil || r.tenant.DatabaseName == "" {
			p.logger.Debug("no tenant database, returning sql without execution")
			r.envelope = &core.AnswerEnvelope{
				Intent: r.intent.Tag(),
				SQL:    r.query.Statement,
			}
			return stateDone, nil
		}
		result, err := p.runner.Run(ctx, r.tenant, r.query.Statement)
		if err != nil {
			p.logger.Error("sql execution failed", "err", err)
			r.envelope = &core.AnswerEnvelope{
				Intent: r.intent.Tag(),
				SQL:    r.query.Statement,
				Error:  err.Error(),
			}
			return stateDone, nil
		}
		r.result = result
		return stateExecuted, nil

	case stateExecuted:
		if p.escalator != nil {
			text, ok, err := p.escalator.Escalate(ctx, r.question, r.result)
			if err != nil {
				p.logger.Error("document answer failed", "err", err)
				r.envelope = &core.AnswerEnvelope{
					Intent: r.intent.Tag(),
					SQL:    r.query.Statement,
					Error:  err.Error(),
				}
				return stateDone, nil
			}
			if ok {
				r.envelope = &core.AnswerEnvelope{
					Intent: r.intent.Tag(),
					Answer: text,
					SQL:    r.query.Statement,
				}
				return stateEscalated, nil
			}
		}
		value, err := p.formatter.Format(ctx, r.question.FullText(), r.query.Statement, r.result)
		if err != nil {
			p.logger.Error("result formatting failed", "err", err)
			r.envelope = &core.AnswerEnvelope{
				Intent: r.intent.Tag(),
				SQL:    r.query.Statement,
				Error:  err.Error(),
			}
			return stateDone, nil
		}
		r.envelope = &core.AnswerEnvelope{
			Intent: r.intent.Tag(),
			Answer: value,
			SQL:    r.query.Statement,
		}
		return stateFormatted, nil

	case stateEscalated, stateFormatted:
		return stateDone, nil

	default:
		return stateDone, nil
	}
}
