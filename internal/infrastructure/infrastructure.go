// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, task queue) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/talonhq/talon/internal/config"
	"github.com/talonhq/talon/pkg/database"
	"github.com/talonhq/talon/pkg/lifecycle"
	"github.com/talonhq/talon/pkg/queue"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, and the task queue.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Queue     queue.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately
// after consumer registration so the queue picks up every handler.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Queue:     queue.New(db.Connection(), cfg.Queue, logger),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and queue hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Queue.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("queue start failed: %w", err)
	}
	return nil
}
