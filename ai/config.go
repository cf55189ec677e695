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


package ai

import (
	"errors"
	"strings"
)

// DefaultAPIVersion is the Azure OpenAI API version used when none is set.
const DefaultAPIVersion = "2024-12-01-preview"

// Config holds configuration for AI service providers.
type Config struct {
	// Endpoint is the base URL of the Azure OpenAI resource.
	// Example: "https://myresource.openai.azure.com"
	Endpoint string

	// APIKey authenticates requests against the endpoint.
	APIKey string

	// APIVersion selects the Azure OpenAI API version.
	// Default: DefaultAPIVersion
	APIVersion string

	// ChatDeployment is the deployment name used for completions.
	// Example: "gpt-4o"
	ChatDeployment string

	// EmbeddingDeployment is the deployment name used for embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingDeployment string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEndpoint sets the Azure OpenAI endpoint URL.
func WithEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithAPIVersion sets the API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithChatDeployment sets the completion deployment name.
func WithChatDeployment(deployment string) ConfigOption {
	return func(c *Config) {
		c.ChatDeployment = deployment
	}
}

// WithEmbeddingDeployment sets the embedding deployment name.
func WithEmbeddingDeployment(deployment string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDeployment = deployment
	}
}

// DefaultConfig returns a Config with the default API version. Endpoint,
// key, and deployment names have no sensible defaults and must be set.
func DefaultConfig() *Config {
	return &Config{
		APIVersion: DefaultAPIVersion,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithEndpoint("https://myresource.openai.azure.com"),
//	    ai.WithAPIKey(key),
//	    ai.WithChatDeployment("gpt-4o"),
//	    ai.WithEmbeddingDeployment("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form: the endpoint
// carries no trailing slash and a missing API version falls back to the
// default.
func (c *Config) Normalize() {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Endpoint == "" {
		return errors.New("ai config: Endpoint is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.ChatDeployment == "" {
		return errors.New("ai config: ChatDeployment is required")
	}
	if c.EmbeddingDeployment == "" {
		return errors.New("ai config: EmbeddingDeployment is required")
	}
	return nil
}
