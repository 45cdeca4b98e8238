package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "llama3.3:70b", cfg.ChatModel)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "none", cfg.Token)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("https://api.example.com/v1"),
		WithChatModel("gpt-4o"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithToken("sk-test"),
		WithTimeouts(90*time.Second, 20*time.Second),
	)

	assert.Equal(t, "https://api.example.com/v1", cfg.ChatHost)
	assert.Equal(t, "https://api.example.com/v1", cfg.EmbeddingHost)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, 90*time.Second, cfg.ChatTimeout)
	assert.Equal(t, 20*time.Second, cfg.QuickTimeout)
}

func TestNewConfig_SplitHosts(t *testing.T) {
	cfg := NewConfig(
		WithChatHost("http://chat.internal:8080/v1"),
		WithEmbeddingHost("http://embed.internal:8080/v1"),
	)

	assert.Equal(t, "http://chat.internal:8080/v1", cfg.ChatHost)
	assert.Equal(t, "http://embed.internal:8080/v1", cfg.EmbeddingHost)
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:11434"),
		WithToken(""),
	)
	cfg.Normalize()

	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "none", cfg.Token)
}

func TestConfig_Normalize_KeepsExistingSuffix(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434/v1"))
	cfg.Normalize()

	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty chat host", func(c *Config) { c.ChatHost = "" }, true},
		{"empty embedding host", func(c *Config) { c.EmbeddingHost = "" }, true},
		{"empty chat model", func(c *Config) { c.ChatModel = "" }, true},
		{"empty embedding model", func(c *Config) { c.EmbeddingModel = "" }, true},
		{"zero chat timeout", func(c *Config) { c.ChatTimeout = 0 }, true},
		{"zero quick timeout", func(c *Config) { c.QuickTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
