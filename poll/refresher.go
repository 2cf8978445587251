// Package poll runs the two periodic loops behind the dashboards: a coarse
// store refresh that reconciles server-side changes, and a fine ticker that
// only recomputes live-duration presentation state.
package poll

import (
	"context"
	"log"
	"time"
)

// Refresher periodically invokes a refresh callback that re-reads the store
// and rebuilds the shift projections. It is a polling pull: another admin's
// correction shows up on the next cycle, there is no push channel.
type Refresher struct {
	interval time.Duration
	refresh  func(context.Context) error
	logger   *log.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRefresher creates a refresher but does not start it. An interval of 0
// disables it.
func NewRefresher(interval time.Duration, refresh func(context.Context) error, logger *log.Logger) *Refresher {
	return &Refresher{
		interval: interval,
		refresh:  refresh,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins the background loop: one immediate refresh, then one per
// interval until ctx is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Printf("store refresher disabled")
		close(r.done)
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	go r.loop(ctx)
	r.logger.Printf("store refresher started (interval=%s)", r.interval)
}

// Stop signals the loop to exit and waits for it to finish.
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	<-r.done
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.done)

	r.run(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.run(ctx)
		}
	}
}

func (r *Refresher) run(ctx context.Context) {
	if err := r.refresh(ctx); err != nil {
		r.logger.Printf("refresh error: %v", err)
	}
}
