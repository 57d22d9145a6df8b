package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rajansharma08/lyftr-webhook-api/internal/cache"
	domain "github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
)

// StatsReporter periodically snapshots store aggregates for operational
// visibility. The scheduler drives it on a fixed interval.
type StatsReporter struct {
	repo   domain.Repository
	cache  cache.Cache
	logger *slog.Logger

	// snapshotTTL bounds how long a cached snapshot outlives the reporter.
	snapshotTTL time.Duration
}

// NewStatsReporter creates a reporter. Cache may be nil, in which case the
// snapshot is only logged.
func NewStatsReporter(repo domain.Repository, c cache.Cache, logger *slog.Logger, snapshotTTL time.Duration) *StatsReporter {
	if snapshotTTL <= 0 {
		snapshotTTL = 5 * time.Minute
	}
	return &StatsReporter{
		repo:        repo,
		cache:       c,
		logger:      logger,
		snapshotTTL: snapshotTTL,
	}
}

// Report loads current aggregates, logs a structured snapshot and caches the
// JSON form for dashboards or other processes to pick up.
func (r *StatsReporter) Report(ctx context.Context) error {
	stats, err := r.repo.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats snapshot: %w", err)
	}

	r.logger.Info("stats snapshot",
		"total_messages", stats.TotalMessages,
		"senders_count", stats.SendersCount,
	)

	if r.cache == nil {
		return nil
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats snapshot: %w", err)
	}

	key := cache.StatsSnapshot.Key("latest")
	if err := r.cache.Set(ctx, key, string(payload), r.snapshotTTL); err != nil {
		// The snapshot is advisory; a cache hiccup should not fail the tick.
		r.logger.Warn("failed to cache stats snapshot", "error", err)
	}

	return nil
}
