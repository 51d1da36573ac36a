package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"coin-desk.backend/internal/infrastructure/events"
	"coin-desk.backend/internal/infrastructure/pricing"
	"coin-desk.backend/pkg/logger"
)

// PriceRefreshJob periodically refreshes the market-price snapshot and
// announces the new quotes on the event feed for ticker views.
type PriceRefreshJob struct {
	source   *pricing.CachedSource
	feed     *events.Feed
	interval time.Duration
	stop     chan struct{}
}

func NewPriceRefreshJob(source *pricing.CachedSource, feed *events.Feed, interval time.Duration) *PriceRefreshJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &PriceRefreshJob{
		source:   source,
		feed:     feed,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *PriceRefreshJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting price refresh job", zap.Duration("interval", j.interval))

	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "price refresh job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "price refresh job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *PriceRefreshJob) Stop() {
	close(j.stop)
}

func (j *PriceRefreshJob) refresh(ctx context.Context) {
	quotes, err := j.source.Refresh(ctx)
	if err != nil {
		logger.Warn(ctx, "price refresh failed", zap.Error(err))
		return
	}

	j.feed.Publish(ctx, "prices", events.EventUpdate, quotes)
	logger.Debug(ctx, "refreshed market prices", zap.Int("symbols", len(quotes)))
}
