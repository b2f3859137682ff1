// Package tasks defines the scheduled background tasks: database
// maintenance and eviction of stale report navigation state.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/pandarinos/yve/internal/config"
	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/pager"
)

// pagerRetention is how long navigation state for a report message is
// kept after its last use.
const pagerRetention = 48 * time.Hour

// ScheduledTaskFunc is the signature every scheduled task implements.
type ScheduledTaskFunc func(ctx context.Context) error

// TaskDeps provides dependencies for the scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	Pager  *pager.Pager
}

// RegisterAllTasks returns the task registry keyed by the names used in
// the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	return map[string]ScheduledTaskFunc{
		"sql_maintenance": newSQLMaintenanceTask(deps),
		"pager_eviction":  newPagerEvictionTask(deps),
	}
}

func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	return func(ctx context.Context) error {
		taskCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		return deps.Store.RunMaintenance(taskCtx)
	}
}

func newPagerEvictionTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "pager_eviction")
	return func(ctx context.Context) error {
		evicted := deps.Pager.EvictBefore(time.Now().Add(-pagerRetention))
		if evicted > 0 {
			log.InfoContext(ctx, "Evicted stale report navigation state", "evicted", evicted)
		}
		return nil
	}
}
