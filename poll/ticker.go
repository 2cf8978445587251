package poll

import (
	"context"
	"time"

	"fichaje.app/fichaje/shifts"
)

// LiveTicker recomputes the open-shift views once per tick and hands them to
// a consumer. It never touches the store: the source slice is whatever the
// last refresh produced, and each tick only reformats elapsed time against
// the wall clock.
type LiveTicker struct {
	interval time.Duration
	source   func() []shifts.Shift
	publish  func([]shifts.OpenShift)
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewLiveTicker(interval time.Duration, source func() []shifts.Shift, publish func([]shifts.OpenShift)) *LiveTicker {
	return &LiveTicker{
		interval: interval,
		source:   source,
		publish:  publish,
		done:     make(chan struct{}),
	}
}

// Start begins ticking. An interval of 0 disables the ticker, same as the
// refresher; Stop still returns immediately.
func (lt *LiveTicker) Start(ctx context.Context) {
	if lt.interval <= 0 {
		close(lt.done)
		return
	}

	ctx, lt.cancel = context.WithCancel(ctx)
	go lt.loop(ctx)
}

func (lt *LiveTicker) Stop() {
	if lt.cancel != nil {
		lt.cancel()
	}
	<-lt.done
}

func (lt *LiveTicker) loop(ctx context.Context) {
	defer close(lt.done)

	lt.tick()

	ticker := time.NewTicker(lt.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lt.tick()
		}
	}
}

func (lt *LiveTicker) tick() {
	lt.publish(shifts.LiveViews(lt.source(), time.Now()))
}
