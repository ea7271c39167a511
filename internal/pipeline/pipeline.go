// Package pipeline composes the prompt registry and the text-generation
// client into the single authoritative generate operation. Category
// semantics are enforced here and only here; callers must not reach the
// generation client directly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/generation"
	"github.com/kdriscoll/mentora-api/internal/prompt"
)

// Pipeline turns a (category, user prompt) pair into normalized model
// output, owning validation, timing telemetry, and error translation.
type Pipeline struct {
	registry  *prompt.Registry
	generator generation.TextGenerator
	logger    *slog.Logger
	now       func() time.Time // injectable for tests
}

// New creates a Pipeline from its two collaborators.
func New(registry *prompt.Registry, generator generation.TextGenerator, logger *slog.Logger) (*Pipeline, error) {
	if registry == nil {
		return nil, fmt.Errorf("prompt registry cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("text generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Pipeline{
		registry:  registry,
		generator: generator,
		logger:    logger.With("component", "generation_pipeline"),
		now:       time.Now,
	}, nil
}

// Generate validates the user prompt, renders the category's template,
// invokes the generation client once, and returns the result with the
// wall-clock duration of the invocation.
//
// Errors propagate unchanged: domain.ErrEmptyPrompt and
// domain.ErrUnknownCategory from local validation, and the generation
// package's taxonomy from the client. A single upstream failure is
// surfaced immediately, never masked by a retry.
func (p *Pipeline) Generate(ctx context.Context, category domain.Category, userPrompt string) (domain.GenerationResult, error) {
	req, err := domain.NewGenerationRequest(category, userPrompt)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	tmpl, err := p.registry.Resolve(req.Category)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	rendered, err := prompt.Render(tmpl, req.UserPrompt)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	p.logger.InfoContext(ctx, "invoking text generation",
		"category", req.Category,
		"prompt_length", len(req.UserPrompt))

	start := p.now()
	text, err := p.generator.GenerateText(ctx, rendered)
	duration := p.now().Sub(start)

	if err != nil {
		p.logger.ErrorContext(ctx, "text generation failed",
			"category", category,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return domain.GenerationResult{}, err
	}

	p.logger.InfoContext(ctx, "text generation succeeded",
		"category", category,
		"duration_ms", duration.Milliseconds(),
		"response_length", len(text))

	return domain.GenerationResult{
		Text:     strings.TrimSpace(text),
		Duration: duration,
	}, nil
}
