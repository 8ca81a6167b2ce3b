package workers

import (
	"context"

	"github.com/mypasslab/mypass/internal/config"
	"github.com/mypasslab/mypass/internal/crypto"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers: the expired disclosure-token
// sweeper and the vault expiry scanner. Each worker spawns its own goroutine
// from Run and stops when ctx is cancelled.
func NewWorkers(ctx context.Context, storages store.Storages, codec *crypto.Codec, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newTokenPurgeWorker(ctx, storages.TokenRepository, cfg.TokenPurgeInterval, logger),
			newExpiryScanWorker(ctx, storages.VaultItemRepository, storages.NotificationRepository, codec, cfg.ExpiryScanInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
