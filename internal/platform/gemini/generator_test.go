package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdriscoll/mentora-api/internal/config"
	"github.com/kdriscoll/mentora-api/internal/generation"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:    "test-api-key",
		ModelName:       "gemini-2.0-flash",
		MaxOutputTokens: 2048,
		Temperature:     0.4,
		TopP:            0.95,
		TopK:            40,
	}
}

func TestNewGenerator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid configuration", func(t *testing.T) {
		gen, err := NewGenerator(context.Background(), logger, testLLMConfig())
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewGenerator(context.Background(), nil, testLLMConfig())
		assert.Error(t, err)
	})

	t.Run("missing API key fails fast before any network call", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.GeminiAPIKey = ""

		_, err := NewGenerator(context.Background(), logger, cfg)
		assert.ErrorIs(t, err, generation.ErrAuthConfiguration)
	})

	t.Run("whitespace API key fails fast", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.GeminiAPIKey = "   "

		_, err := NewGenerator(context.Background(), logger, cfg)
		assert.ErrorIs(t, err, generation.ErrAuthConfiguration)
	})

	t.Run("missing model name", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.ModelName = ""

		_, err := NewGenerator(context.Background(), logger, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}

func TestGenerateTextRejectsEmptyPrompt(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gen, err := NewGenerator(context.Background(), logger, testLLMConfig())
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), "  ")
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
