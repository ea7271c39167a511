package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/kdriscoll/mentora-api/internal/config"
	"github.com/kdriscoll/mentora-api/internal/generation"
)

// Generator implements generation.TextGenerator against the Gemini API.
//
// Decoding parameters are design constants fixed at construction and
// supplied identically on every call. They are chosen to favor latency
// and determinism over creativity; they are not user-configurable per
// request.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// Ensure Generator implements the TextGenerator interface.
var _ generation.TextGenerator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed text generator.
//
// The API credential is validated fail-fast here, before any network
// call is attempted: a missing key returns generation.ErrAuthConfiguration
// immediately rather than surfacing later as an opaque upstream failure.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("%w: gemini API key is not configured", generation.ErrAuthConfiguration)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With("component", "gemini_generator"),
		client: client,
		model:  cfg.ModelName,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.Temperature),
			TopP:            genai.Ptr(cfg.TopP),
			TopK:            genai.Ptr(cfg.TopK),
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}, nil
}

// GenerateText sends the rendered prompt to the Gemini API and returns
// the response text. One outbound call per invocation; a single upstream
// failure is surfaced immediately with no retry, so the caller decides
// whether to resubmit.
func (g *Generator) GenerateText(ctx context.Context, renderedPrompt string) (string, error) {
	if strings.TrimSpace(renderedPrompt) == "" {
		return "", fmt.Errorf("%w: rendered prompt is empty", generation.ErrInvalidConfig)
	}

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"prompt_length", len(renderedPrompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(renderedPrompt), g.config)
	if err != nil {
		return "", g.mapAPIError(ctx, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		g.logger.WarnContext(ctx, "Gemini blocked content via safety filters", "model", g.model)
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "Gemini API call succeeded",
		"model", g.model,
		"response_length", len(text))

	return text, nil
}

// mapAPIError translates genai client errors into the generation error
// taxonomy. Credential rejections map to ErrAuthConfiguration so they
// surface as actionable configuration problems; everything else is an
// upstream failure.
func (g *Generator) mapAPIError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			g.logger.ErrorContext(ctx, "Gemini rejected API credential",
				"status", apiErr.Code)
			return fmt.Errorf("%w: %s", generation.ErrAuthConfiguration, apiErr.Message)
		}
	}

	g.logger.ErrorContext(ctx, "Gemini API call failed", "error", err)
	return fmt.Errorf("%w: %v", generation.ErrUpstream, err)
}
