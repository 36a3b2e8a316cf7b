package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velora/storefront_api/internal/service"
)

// SectionRefreshWorker periodically rebuilds the cached marketing sections
// from the product source.
type SectionRefreshWorker struct {
	sections *service.SectionService
	interval time.Duration
}

// NewSectionRefreshWorker constructs a SectionRefreshWorker.
func NewSectionRefreshWorker(sections *service.SectionService, interval time.Duration) *SectionRefreshWorker {
	return &SectionRefreshWorker{
		sections: sections,
		interval: interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *SectionRefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting section refresh worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Section refresh worker stopped")
			return
		}
	}
}

func (w *SectionRefreshWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.sections.RefreshAll(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh sections")
		return
	}
	log.Info().Dur("duration", time.Since(start)).Msg("Section refresh completed")
}
