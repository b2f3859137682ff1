package handlers

import (
	"log/slog"
	"sync"

	"github.com/pandarinos/yve/internal/config"
	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/pager"
	"github.com/pandarinos/yve/internal/stats"
)

// HandlerDeps provides dependencies for Telegram command and message handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Reporter *stats.Reporter
	Pager    *pager.Pager
	Debug    *DebugFlag
}

// DebugFlag is the process-wide debug echo switch. It is toggled only
// through the admin-gated /debug command, so writes come from a single
// actor; the mutex keeps reads from ingestion handlers race-free.
type DebugFlag struct {
	mu      sync.Mutex
	enabled bool
}

// Toggle flips the flag and returns the new state.
func (d *DebugFlag) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = !d.enabled
	return d.enabled
}

// Enabled reports the current state.
func (d *DebugFlag) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}
