package workers

import (
	"context"
	"time"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/metrics"
	"creatorhub_backend/internal/repositories"

	"gorm.io/gorm"
)

const tokenCleanupWorkerName = "refresh_token_cleanup"

// TokenCleanupWorker periodically removes expired refresh tokens.
type TokenCleanupWorker struct {
	db       *gorm.DB
	repo     repositories.RefreshTokenRepository
	interval time.Duration
	now      func() time.Time
}

func NewTokenCleanupWorker(db *gorm.DB, repo repositories.RefreshTokenRepository, interval time.Duration) *TokenCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanupWorker{
		db:       db,
		repo:     repo,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the cleanup in the background until ctx is cancelled.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *TokenCleanupWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker stopped", "worker", tokenCleanupWorkerName)
			return
		case <-ticker.C:
			_, _ = w.RunOnce(ctx)
		}
	}
}

// RunOnce deletes every token that expired before now.
func (w *TokenCleanupWorker) RunOnce(ctx context.Context) (int64, error) {
	db := w.db
	if db != nil {
		db = db.WithContext(ctx)
	}
	removed, err := w.repo.DeleteExpired(db, w.now())
	logger.WorkerLog(tokenCleanupWorkerName, "delete_expired", err)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		metrics.ExpiredTokensRemoved.Add(float64(removed))
		logger.Info("Expired refresh tokens removed", "count", removed)
	}
	return removed, nil
}
