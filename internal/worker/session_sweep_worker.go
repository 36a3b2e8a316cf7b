package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velora/storefront_api/internal/view"
)

// SessionSweepWorker evicts idle view sessions so their pending loading
// timers are stopped instead of firing against discarded views.
type SessionSweepWorker struct {
	store    *view.Store
	interval time.Duration
}

// NewSessionSweepWorker constructs a SessionSweepWorker.
func NewSessionSweepWorker(store *view.Store, interval time.Duration) *SessionSweepWorker {
	return &SessionSweepWorker{
		store:    store,
		interval: interval,
	}
}

// Start begins the periodic sweep loop and listens for context cancellation.
func (w *SessionSweepWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting session sweep worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if evicted := w.store.Sweep(); evicted > 0 {
				log.Info().Int("evicted", evicted).Int("live", w.store.Len()).Msg("Expired view sessions evicted")
			}
		case <-ctx.Done():
			log.Info().Msg("Session sweep worker stopped")
			return
		}
	}
}
