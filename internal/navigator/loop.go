package navigator

import (
	"context"
	"time"
)

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = time.Second / 60

// Loop is the event loop owning a Navigator. Scroll and click events are
// posted from any goroutine and handled, together with frame callbacks, on
// the single goroutine running Run. Loop is the Navigator's FrameScheduler.
type Loop struct {
	interval time.Duration
	events   chan func(*Navigator)
	frames   []func()
}

// NewLoop returns a loop firing frames every interval (DefaultFrameInterval
// if interval is not positive).
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		interval: interval,
		events:   make(chan func(*Navigator)),
	}
}

// RequestFrame implements FrameScheduler. It is only called from the loop
// goroutine, by the Navigator.
func (l *Loop) RequestFrame(fn func()) {
	l.frames = append(l.frames, fn)
}

// Run processes events and frames for n until ctx is cancelled. A frame
// requested before cancellation that has not fired is discarded with the
// loop.
func (l *Loop) Run(ctx context.Context, n *Navigator) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn(n)
		case <-ticker.C:
			batch := l.frames
			l.frames = nil
			for _, fn := range batch {
				fn()
			}
		}
	}
}

// Scroll posts a scroll event.
func (l *Loop) Scroll(ctx context.Context) error {
	return l.post(ctx, func(n *Navigator) { n.OnScroll() })
}

// Click posts a click on a trigger element.
func (l *Loop) Click(ctx context.Context, t Trigger) error {
	return l.post(ctx, func(n *Navigator) { n.OnClick(t) })
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func(*Navigator)) error {
	done := make(chan struct{})
	if err := l.post(ctx, func(n *Navigator) {
		defer close(done)
		fn(n)
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) post(ctx context.Context, fn func(*Navigator)) error {
	select {
	case l.events <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
