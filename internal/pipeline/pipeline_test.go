package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/generation"
	"github.com/kdriscoll/mentora-api/internal/prompt"
)

// mockGenerator is a hand-written TextGenerator test double.
type mockGenerator struct {
	generateFn func(ctx context.Context, renderedPrompt string) (string, error)
	callCount  int
	lastPrompt string
}

func (m *mockGenerator) GenerateText(ctx context.Context, renderedPrompt string) (string, error) {
	m.callCount++
	m.lastPrompt = renderedPrompt
	if m.generateFn != nil {
		return m.generateFn(ctx, renderedPrompt)
	}
	return "generated text", nil
}

func newTestPipeline(t *testing.T, gen generation.TextGenerator) *Pipeline {
	t.Helper()

	registry, err := prompt.NewRegistry()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := New(registry, gen, logger)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	registry, err := prompt.NewRegistry()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		registry  *prompt.Registry
		generator generation.TextGenerator
		logger    *slog.Logger
		wantErr   bool
	}{
		{"all dependencies", registry, &mockGenerator{}, logger, false},
		{"nil registry", nil, &mockGenerator{}, logger, true},
		{"nil generator", registry, nil, logger, true},
		{"nil logger", registry, &mockGenerator{}, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.registry, tc.generator, tc.logger)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateSuccess(t *testing.T) {
	const responseText = "Mitochondria are the powerhouse of the cell."

	gen := &mockGenerator{
		generateFn: func(ctx context.Context, renderedPrompt string) (string, error) {
			return responseText, nil
		},
	}
	p := newTestPipeline(t, gen)

	result, err := p.Generate(context.Background(), domain.CategoryNotes, "cell biology")
	require.NoError(t, err)

	assert.Equal(t, responseText, result.Text)
	assert.GreaterOrEqual(t, result.DurationMs(), int64(0))
	assert.Equal(t, 1, gen.callCount)

	// The client receives the rendered template, which embeds the user prompt.
	assert.Contains(t, gen.lastPrompt, "cell biology")
}

func TestGenerateMeasuresDuration(t *testing.T) {
	gen := &mockGenerator{}
	p := newTestPipeline(t, gen)

	// Inject a deterministic clock: each call advances 250ms.
	current := time.Unix(1700000000, 0)
	p.now = func() time.Time {
		t := current
		current = current.Add(250 * time.Millisecond)
		return t
	}

	result, err := p.Generate(context.Background(), domain.CategoryQuiz, "tides")
	require.NoError(t, err)
	assert.Equal(t, int64(250), result.DurationMs())
}

func TestGenerateEmptyPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &mockGenerator{}
			p := newTestPipeline(t, gen)

			_, err := p.Generate(context.Background(), domain.CategoryContent, tc.prompt)
			assert.ErrorIs(t, err, domain.ErrEmptyPrompt)

			// The generation client must never be invoked for invalid input.
			assert.Equal(t, 0, gen.callCount)
		})
	}
}

func TestGenerateUnknownCategory(t *testing.T) {
	gen := &mockGenerator{}
	p := newTestPipeline(t, gen)

	_, err := p.Generate(context.Background(), domain.Category("podcast"), "tides")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.Equal(t, 0, gen.callCount)
}

func TestGeneratePropagatesClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{"auth configuration", generation.ErrAuthConfiguration},
		{"upstream failure", generation.ErrUpstream},
		{"content blocked", generation.ErrContentBlocked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &mockGenerator{
				generateFn: func(ctx context.Context, renderedPrompt string) (string, error) {
					return "", tc.wantErr
				},
			}
			p := newTestPipeline(t, gen)

			_, err := p.Generate(context.Background(), domain.CategoryFlashcards, "ionic bonds")
			assert.ErrorIs(t, err, tc.wantErr)

			// No retry: exactly one invocation per submit.
			assert.Equal(t, 1, gen.callCount)
		})
	}
}

func TestGenerateNormalizesPromptWhitespace(t *testing.T) {
	gen := &mockGenerator{}
	p := newTestPipeline(t, gen)

	_, err := p.Generate(context.Background(), domain.CategoryNotes, "  plate tectonics \n")
	require.NoError(t, err)

	// The rendered template embeds the trimmed prompt, never the raw input.
	assert.Contains(t, gen.lastPrompt, "plate tectonics")
	assert.NotContains(t, gen.lastPrompt, "  plate tectonics")
}

func TestGenerateTrimsResponse(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(ctx context.Context, renderedPrompt string) (string, error) {
			return "\n  trimmed output  \n", nil
		},
	}
	p := newTestPipeline(t, gen)

	result, err := p.Generate(context.Background(), domain.CategoryAssistant, "what is entropy")
	require.NoError(t, err)
	assert.Equal(t, "trimmed output", result.Text)
}

func TestGeneratePropagatesContextError(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(ctx context.Context, renderedPrompt string) (string, error) {
			return "", errors.Join(generation.ErrUpstream, context.DeadlineExceeded)
		},
	}
	p := newTestPipeline(t, gen)

	_, err := p.Generate(context.Background(), domain.CategoryMaterials, "orbital mechanics")
	assert.ErrorIs(t, err, generation.ErrUpstream)
}
