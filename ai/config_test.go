package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return NewConfig(
		WithEndpoint("https://myresource.openai.azure.com"),
		WithAPIKey("secret"),
		WithChatDeployment("gpt-4o"),
		WithEmbeddingDeployment("text-embedding-3-small"),
	)
}

func TestNewConfig(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "https://myresource.openai.azure.com", cfg.Endpoint)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, "gpt-4o", cfg.ChatDeployment)
}

func TestConfigNormalize(t *testing.T) {
	t.Run("strips trailing slash", func(t *testing.T) {
		cfg := validConfig()
		cfg.Endpoint = "https://myresource.openai.azure.com/"
		cfg.Normalize()
		assert.Equal(t, "https://myresource.openai.azure.com", cfg.Endpoint)
	})

	t.Run("fills missing api version", func(t *testing.T) {
		cfg := validConfig()
		cfg.APIVersion = ""
		cfg.Normalize()
		assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Endpoint = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := validConfig()
		cfg.APIKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing chat deployment", func(t *testing.T) {
		cfg := validConfig()
		cfg.ChatDeployment = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing embedding deployment", func(t *testing.T) {
		cfg := validConfig()
		cfg.EmbeddingDeployment = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes first", func(t *testing.T) {
		cfg := validConfig()
		cfg.Endpoint = "  https://myresource.openai.azure.com/  "
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "https://myresource.openai.azure.com", cfg.Endpoint)
	})
}
