// Package navigator keeps the sidebar highlight in sync with the scroll
// position of a page and toggles the sidebar disclosure panel.
//
// A Navigator is single-threaded: every method must be called from the one
// goroutine that owns it (see Loop). Scroll events are throttled to one
// recomputation per display frame; events arriving while a recomputation is
// pending are dropped, not queued.
package navigator

import (
	"go.uber.org/zap"

	"github.com/ziadkadry99/sidenav/internal/heading"
	"github.com/ziadkadry99/sidenav/internal/logging"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// Viewport reports the layout of the scrolled content.
type Viewport interface {
	// Height is the height of the visible viewport.
	Height() float64
	// Top is the top offset of a heading's bounding box relative to the
	// viewport top. Negative once the heading has scrolled past.
	Top(headingID string) float64
}

// FrameScheduler runs a callback on the next display refresh.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// Trigger identifies an element whose click toggles the sidebar panel.
type Trigger string

const (
	TriggerDisclosure Trigger = "disclosure"
	TriggerMask       Trigger = "mask"
)

// Navigator owns one page's navigation state.
type Navigator struct {
	nav      *sidebar.Navigation
	headings []heading.Heading
	viewport Viewport
	frames   FrameScheduler
	panel    *Panel
	logger   *zap.Logger

	ticking bool
	stats   Stats
}

// Stats counts scroll handling activity.
type Stats struct {
	Events     int // scroll events received
	Dropped    int // events dropped while a frame was pending
	Recomputes int // winner recomputations run
	NoWinner   int // recomputations that found no winner
	Errors     int // recomputations that failed
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger used for recomputation failures.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) { n.logger = l }
}

// WithPanel sets the disclosure panel toggled by triggers.
func WithPanel(p *Panel) Option {
	return func(n *Navigator) { n.panel = p }
}

// New creates a Navigator over a built navigation and the headings it was
// built from, in document order. Headings without an entry in nav, such as
// orphans dropped by Build, never take part in winner selection.
func New(nav *sidebar.Navigation, headings []heading.Heading, viewport Viewport, frames FrameScheduler, opts ...Option) *Navigator {
	n := &Navigator{
		nav:      nav,
		headings: linked(nav, headings),
		viewport: viewport,
		frames:   frames,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = logging.OrNop(n.logger)
	if n.panel == nil {
		n.panel = &Panel{}
	}
	return n
}

func linked(nav *sidebar.Navigation, headings []heading.Heading) []heading.Heading {
	out := make([]heading.Heading, 0, len(headings))
	for _, h := range headings {
		if _, ok := nav.Entry(h.ID); ok {
			out = append(out, h)
		}
	}
	return out
}

// Navigation returns the navigation whose active flags the navigator drives.
func (n *Navigator) Navigation() *sidebar.Navigation { return n.nav }

// Panel returns the disclosure panel.
func (n *Navigator) Panel() *Panel { return n.panel }

// Stats returns a snapshot of the scroll counters.
func (n *Navigator) Stats() Stats { return n.stats }

// Pending reports whether a recomputation is scheduled but has not run.
func (n *Navigator) Pending() bool { return n.ticking }

// OnScroll handles one scroll event. At most one recomputation is in
// flight; the frame callback reads the viewport when it fires, so it
// reflects the latest scroll position.
func (n *Navigator) OnScroll() {
	n.stats.Events++
	if n.ticking {
		n.stats.Dropped++
		return
	}
	n.ticking = true
	n.frames.RequestFrame(func() {
		if err := n.Sync(); err != nil {
			n.stats.Errors++
			n.logger.Error("sidebar sync failed", zap.Error(err))
		}
		n.ticking = false
	})
}

// Sync recomputes the winner now and updates the highlight. When no heading
// qualifies the current highlighting is left untouched.
func (n *Navigator) Sync() error {
	n.stats.Recomputes++
	winner, ok := Winner(n.headings, n.viewport)
	if !ok {
		n.stats.NoWinner++
		n.logger.Debug("no heading in view")
		return nil
	}
	n.logger.Debug("sidebar winner", zap.String("heading", winner))
	return n.nav.Activate(winner)
}

// OnClick handles a click on a trigger element. Both the disclosure
// control and the mask toggle the panel; other triggers are ignored.
func (n *Navigator) OnClick(t Trigger) {
	switch t {
	case TriggerDisclosure, TriggerMask:
		n.panel.Toggle()
	}
}

// Winner picks the heading occupying the top of the viewport. Headings are
// scanned in document order: a heading below the viewport ends the scan;
// otherwise it becomes the winner, and the scan ends at the first winner
// that has not yet crossed the viewport top.
func Winner(headings []heading.Heading, vp Viewport) (string, bool) {
	height := vp.Height()
	winner, found := "", false
	for _, h := range headings {
		top := vp.Top(h.ID)
		if top > height {
			break
		}
		winner, found = h.ID, true
		if top > 0 {
			break
		}
	}
	return winner, found
}
