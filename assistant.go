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

package woqa

import (
	"context"
	"log/slog"

	"github.com/quadrantai/woqa/ai"
	"github.com/quadrantai/woqa/ai/openai"
	"github.com/quadrantai/woqa/answer"
	"github.com/quadrantai/woqa/core"
	"github.com/quadrantai/woqa/document"
	"github.com/quadrantai/woqa/examples"
	"github.com/quadrantai/woqa/execution"
	"github.com/quadrantai/woqa/intent"
	"github.com/quadrantai/woqa/knowledge"
	"github.com/quadrantai/woqa/pipeline"
	"github.com/quadrantai/woqa/sqlgen"
	"github.com/quadrantai/woqa/tenant"
)

// Assistant bundles the knowledge base, example index, AI provider, and
// pipeline behind one handle. It is the embedding surface: open it once,
// answer many questions, close it on shutdown.
type Assistant struct {
	store    *examples.Store
	provider ai.Provider
	kb       *knowledge.Knowledge
	pipeline *pipeline.Pipeline
	decoder  tenant.Decoder
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig   *ai.Config
	dbConfig   *execution.Config
	recognizer document.Recognizer
	schemaPath string
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) { o.aiConfig = config }
}

// WithDatabaseConfig enables SQL execution against tenant databases.
func WithDatabaseConfig(config *execution.Config) AssistantOption {
	return func(o *assistantOptions) { o.dbConfig = config }
}

// WithRecognizer enables OCR for scanned documents in the escalation branch.
func WithRecognizer(recognizer document.Recognizer) AssistantOption {
	return func(o *assistantOptions) { o.recognizer = recognizer }
}

// WithSchemaPath overrides the bundled schema file.
func WithSchemaPath(path string) AssistantOption {
	return func(o *assistantOptions) { o.schemaPath = path }
}

// NewAssistant opens the example index at indexPath and wires the full
// pipeline around it.
func NewAssistant(indexPath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	var kb *knowledge.Knowledge
	var err error
	if options.schemaPath != "" {
		kb, err = knowledge.Load(options.schemaPath)
	} else {
		kb, err = knowledge.LoadBundled()
	}
	if err != nil {
		return nil, err
	}

	store, err := examples.OpenStore(indexPath, false)
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	searcher, err := examples.NewSearcher(store, provider.Embedder())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	classifier, err := intent.NewClassifier(provider.Completer())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	synthesizer, err := sqlgen.NewSynthesizer(provider.Completer(), kb, sqlgen.WithSearcher(searcher))
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	formatter, err := answer.NewFormatter(provider.Completer())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	var pipelineOpts []pipeline.Option
	if options.dbConfig != nil {
		runner, err := execution.NewExecutor(options.dbConfig)
		if err != nil {
			provider.Close()
			store.Close()
			return nil, err
		}
		pipelineOpts = append(pipelineOpts, pipeline.WithRunner(runner))
	}

	escalatorOpts := []document.Option{}
	if options.recognizer != nil {
		escalatorOpts = append(escalatorOpts, document.WithRecognizer(options.recognizer))
	}
	escalator, err := document.NewEscalator(provider.Completer(), escalatorOpts...)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}
	pipelineOpts = append(pipelineOpts, pipeline.WithEscalator(escalator))

	p, err := pipeline.New(classifier, synthesizer, formatter, pipelineOpts...)
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	return &Assistant{
		store:    store,
		provider: provider,
		kb:       kb,
		pipeline: p,
		decoder:  tenant.NewTokenDecoder(),
		logger:   slog.Default(),
	}, nil
}

// Ask answers one question. The token, when present, scopes execution to the
// caller's database; without a valid token the answer carries SQL only.
func (a *Assistant) Ask(ctx context.Context, question *core.Question) (*core.AnswerEnvelope, error) {
	var tc core.TenantContext
	if question != nil {
		if decoded, ok := a.decoder.Decode(question.Token); ok {
			tc = decoded
		}
	}
	return a.pipeline.Answer(ctx, question, tc)
}

// NewSeeder returns a seeder that populates this assistant's example index.
func (a *Assistant) NewSeeder(opts ...examples.SeederOption) (*examples.Seeder, error) {
	return examples.NewSeeder(a.store, a.provider.Embedder(), opts...)
}

// Store exposes the example index.
func (a *Assistant) Store() *examples.Store {
	return a.store
}

// Close releases the AI provider and the example index.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing example store", "err", err)
		return err
	}
	return nil
}
