// Package controller coordinates user input, pipeline invocation, and
// export invocation for one feature screen. Each controller instance
// owns independent state; there is no shared mutable state across
// instances.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/events"
	"github.com/kdriscoll/mentora-api/internal/session"
)

// GenerationState is the controller's generation lifecycle state.
type GenerationState string

// Generation states.
const (
	StateIdle    GenerationState = "idle"
	StateLoading GenerationState = "loading"
	StateReady   GenerationState = "ready"
	StateFailed  GenerationState = "failed"
)

// ExportState is the controller's export lifecycle state. It advances
// independently of the generation state.
type ExportState string

// Export states.
const (
	ExportStateIdle      ExportState = "export_idle"
	ExportStateExporting ExportState = "exporting"
	ExportStateFailed    ExportState = "export_failed"
)

// Controller operation errors.
var (
	// ErrNotReady is returned when an export is requested before a
	// generation result is available.
	ErrNotReady = errors.New("no generated content to export")

	// ErrExportInProgress is returned when an export is requested while
	// a previous export is still running.
	ErrExportInProgress = errors.New("an export is already in progress")
)

// maxNotices bounds the per-controller notice history.
const maxNotices = 20

// GenerationPipeline is the controller's view of the generation pipeline.
type GenerationPipeline interface {
	Generate(ctx context.Context, category domain.Category, userPrompt string) (domain.GenerationResult, error)
}

// DocumentExporter is the controller's view of the export service.
type DocumentExporter interface {
	Export(ctx context.Context, job domain.ExportJob) (domain.Artifact, error)
}

// Controller drives one feature screen: it validates input, gates on the
// session, invokes the pipeline exactly once per submit, tracks state
// transitions, and emits a notification on every terminal transition.
//
// Submissions carry a sequence number. A response is applied only when
// its sequence matches the latest submit, so a stale response arriving
// after a newer request can never clobber the newer result.
type Controller struct {
	category domain.Category
	pipeline GenerationPipeline
	exporter DocumentExporter
	session  session.Source
	notifier events.Notifier
	logger   *slog.Logger

	mu         sync.Mutex
	seq        uint64
	state      GenerationState
	result     *domain.GenerationResult
	lastPrompt string
	expState   ExportState
	artifact   *domain.Artifact
	notices    []events.Notice
}

// Snapshot is an immutable view of controller state for rendering.
type Snapshot struct {
	Category     domain.Category          `json:"category"`
	State        GenerationState          `json:"state"`
	Result       *domain.GenerationResult `json:"result,omitempty"`
	ExportState  ExportState              `json:"export_state"`
	LastArtifact *domain.Artifact         `json:"last_artifact,omitempty"`
	Notices      []events.Notice          `json:"notices"`
}

// New creates a Controller for one feature screen.
func New(
	category domain.Category,
	pipeline GenerationPipeline,
	exporter DocumentExporter,
	src session.Source,
	notifier events.Notifier,
	logger *slog.Logger,
) (*Controller, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, errors.New("pipeline cannot be nil")
	}
	if exporter == nil {
		return nil, errors.New("exporter cannot be nil")
	}
	if src == nil {
		return nil, errors.New("session source cannot be nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Controller{
		category: category,
		pipeline: pipeline,
		exporter: exporter,
		session:  src,
		notifier: notifier,
		logger:   logger.With("component", "feature_controller", "category", category),
		state:    StateIdle,
		expState: ExportStateIdle,
	}, nil
}

// Submit validates the prompt, enters Loading, and invokes the pipeline
// asynchronously. A blank prompt or an unauthenticated session leaves
// the state machine untouched and emits a validation notice.
func (c *Controller) Submit(ctx context.Context, userPrompt string) error {
	userPrompt = strings.TrimSpace(userPrompt)

	c.mu.Lock()

	if _, ok := c.session.Current(); !ok {
		c.appendNoticeLocked(ctx, events.LevelError, "Sign in to generate content.")
		c.mu.Unlock()
		return domain.ErrUnauthorized
	}

	if userPrompt == "" {
		c.appendNoticeLocked(ctx, events.LevelError, "Enter a topic to generate content.")
		c.mu.Unlock()
		return domain.ErrEmptyPrompt
	}

	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.result = nil
	c.lastPrompt = userPrompt
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "submit accepted", "seq", seq, "prompt_length", len(userPrompt))

	// The in-flight call is never cancelled when a newer submit
	// supersedes it; its result is simply discarded on arrival.
	callCtx := context.WithoutCancel(ctx)
	go func() {
		result, err := c.pipeline.Generate(callCtx, c.category, userPrompt)
		c.applyResult(callCtx, seq, result, err)
	}()

	return nil
}

// applyResult finishes a generation round trip. Responses whose sequence
// no longer matches the latest submit are dropped deterministically.
func (c *Controller) applyResult(ctx context.Context, seq uint64, result domain.GenerationResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.DebugContext(ctx, "dropping stale generation response",
			"seq", seq, "latest_seq", c.seq)
		return
	}

	if err != nil {
		c.state = StateFailed
		c.result = nil
		c.logger.ErrorContext(ctx, "generation failed", "seq", seq, "error", err)
		c.appendNoticeLocked(ctx, events.LevelError, "Content generation failed. Please try again.")
		return
	}

	c.state = StateReady
	c.result = &result
	c.appendNoticeLocked(ctx, events.LevelInfo, "Content generated successfully.")
}

// Export runs the current Ready result through the export service
// asynchronously. The export state machine advances independently of
// the generation state machine.
func (c *Controller) Export(ctx context.Context, filename string) error {
	c.mu.Lock()

	if c.state != StateReady || c.result == nil {
		c.mu.Unlock()
		return ErrNotReady
	}
	if c.expState == ExportStateExporting {
		c.mu.Unlock()
		return ErrExportInProgress
	}

	job := domain.ExportJob{
		Content:  c.result.Text,
		Title:    c.exportTitleLocked(),
		Filename: filename,
	}
	if err := job.Validate(); err != nil {
		c.appendNoticeLocked(ctx, events.LevelError, "Enter a file name for the export.")
		c.mu.Unlock()
		return err
	}

	c.expState = ExportStateExporting
	c.mu.Unlock()

	callCtx := context.WithoutCancel(ctx)
	go func() {
		artifact, err := c.exporter.Export(callCtx, job)
		c.applyExport(callCtx, artifact, err)
	}()

	return nil
}

// applyExport finishes an export round trip.
func (c *Controller) applyExport(ctx context.Context, artifact domain.Artifact, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.expState = ExportStateFailed
		c.logger.ErrorContext(ctx, "export failed", "error", err)
		c.appendNoticeLocked(ctx, events.LevelError, "Export failed. No file was saved.")
		return
	}

	c.expState = ExportStateIdle
	c.artifact = &artifact
	c.appendNoticeLocked(ctx, events.LevelInfo, fmt.Sprintf("Saved %s.", artifact.Name))
}

// Snapshot returns the current controller state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	notices := make([]events.Notice, len(c.notices))
	copy(notices, c.notices)

	return Snapshot{
		Category:     c.category,
		State:        c.state,
		Result:       c.result,
		ExportState:  c.expState,
		LastArtifact: c.artifact,
		Notices:      notices,
	}
}

// exportTitleLocked derives the document title from the last submitted
// topic. Callers must hold c.mu.
func (c *Controller) exportTitleLocked() string {
	if c.lastPrompt != "" {
		return c.lastPrompt
	}
	return string(c.category)
}

// appendNoticeLocked records a notice in the bounded history and fans it
// out through the notifier. Callers must hold c.mu.
func (c *Controller) appendNoticeLocked(ctx context.Context, level events.Level, message string) {
	notice := events.NewNotice(level, message)
	c.notices = append(c.notices, notice)
	if len(c.notices) > maxNotices {
		c.notices = c.notices[len(c.notices)-maxNotices:]
	}
	c.notifier.Notify(ctx, notice)
}
