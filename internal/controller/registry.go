package controller

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/events"
	"github.com/kdriscoll/mentora-api/internal/session"
)

// Registry hands out one controller per (user, category) pair, creating
// it on first use. Each feature screen owns independent state, so two
// users or two categories never share a controller.
type Registry struct {
	pipeline GenerationPipeline
	exporter DocumentExporter
	notifier events.Notifier
	logger   *slog.Logger

	mu          sync.Mutex
	controllers map[registryKey]*Controller
}

type registryKey struct {
	userID   uuid.UUID
	category domain.Category
}

// NewRegistry creates a Registry with the shared collaborators every
// controller uses.
func NewRegistry(
	pipeline GenerationPipeline,
	exporter DocumentExporter,
	notifier events.Notifier,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		pipeline:    pipeline,
		exporter:    exporter,
		notifier:    notifier,
		logger:      logger,
		controllers: make(map[registryKey]*Controller),
	}
}

// Get returns the controller for the given user and category, creating
// it if it does not exist yet. The controller's session is bound to the
// already-authenticated user.
func (r *Registry) Get(user session.User, category domain.Category) (*Controller, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	key := registryKey{userID: user.ID, category: category}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ctrl, ok := r.controllers[key]; ok {
		return ctrl, nil
	}

	ctrl, err := New(category, r.pipeline, r.exporter, session.NewStatic(user), r.notifier, r.logger)
	if err != nil {
		return nil, err
	}

	r.controllers[key] = ctrl
	return ctrl, nil
}
