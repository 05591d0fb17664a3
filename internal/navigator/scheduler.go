package navigator

// ManualScheduler queues frame callbacks until Flush runs them. It stands in
// for the display refresh in tests and headless use.
type ManualScheduler struct {
	queue []func()
}

// RequestFrame queues fn for the next Flush.
func (s *ManualScheduler) RequestFrame(fn func()) {
	s.queue = append(s.queue, fn)
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int { return len(s.queue) }

// Flush runs the callbacks queued before the call, in order, and returns
// how many ran. Callbacks requested during the flush wait for the next one.
func (s *ManualScheduler) Flush() int {
	batch := s.queue
	s.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// StaticViewport is a Viewport over fixed offsets.
type StaticViewport struct {
	H    float64
	Tops map[string]float64
}

// Height implements Viewport.
func (v *StaticViewport) Height() float64 { return v.H }

// Top implements Viewport. Unknown headings are reported below the viewport.
func (v *StaticViewport) Top(id string) float64 {
	if top, ok := v.Tops[id]; ok {
		return top
	}
	return v.H + 1
}

// Scroll shifts every heading by dy, as scrolling the content down by dy does.
func (v *StaticViewport) Scroll(dy float64) {
	for id, top := range v.Tops {
		v.Tops[id] = top - dy
	}
}
