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


package openai

import (
	"context"
	"log/slog"

	"github.com/quadrantai/woqa/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements ai.Completer using an Azure OpenAI chat deployment.
type Completer struct {
	client llms.Model
	logger *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(config.Endpoint),
		openai.WithToken(config.APIKey),
		openai.WithAPIVersion(config.APIVersion),
		openai.WithModel(config.ChatDeployment),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		logger: slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends one prompt to the model and returns the text response
// as-is. Deterministic settings (temperature 0) are used because every
// caller in the pipeline wants reproducible routing and SQL.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("invoking completion", "promptLength", len(prompt))

	response, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt,
		llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("completion failed", "err", err)
		return "", err
	}

	return response, nil
}
