package workers

import (
	"context"
	"time"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/store"
)

// tokenPurgeWorker periodically deletes expired disclosure tokens so that
// the token table does not accumulate dead rows between issue/validate
// sweeps.
type tokenPurgeWorker struct {
	ctx      context.Context
	tokens   store.TokenRepository
	interval time.Duration
	logger   *logger.Logger
}

func newTokenPurgeWorker(ctx context.Context, tokens store.TokenRepository, interval time.Duration, logger *logger.Logger) *tokenPurgeWorker {
	return &tokenPurgeWorker{
		ctx:      ctx,
		tokens:   tokens,
		interval: interval,
		logger:   logger,
	}
}

func (w *tokenPurgeWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("token purge worker stopped")
				return
			case <-ticker.C:
				w.runOnce(w.ctx)
			}
		}
	}()
}

func (w *tokenPurgeWorker) runOnce(ctx context.Context) {
	if err := w.tokens.PurgeExpired(ctx, time.Now()); err != nil {
		w.logger.Err(err).Msg("expired token purge failed")
	}
}
