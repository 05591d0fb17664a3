package navigator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

func TestLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	hs := headings("A", "a1", "B")
	vp := viewport(800, map[string]float64{"A": 10, "a1": 400, "B": 900})
	nav, err := sidebar.Build(hs)
	require.NoError(t, err)

	loop := NewLoop(5 * time.Millisecond)
	n := New(nav, hs, vp, loop)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- loop.Run(ctx, n) }()

	// A burst handled atomically on the loop goroutine, before any frame.
	require.NoError(t, loop.Do(ctx, func(n *Navigator) {
		for i := 0; i < 10; i++ {
			n.OnScroll()
			vp.Scroll(50)
		}
	}))

	require.Eventually(t, func() bool {
		var pending bool
		_ = loop.Do(ctx, func(n *Navigator) { pending = n.Pending() })
		return !pending
	}, time.Second, 5*time.Millisecond)

	var stats Stats
	var active []string
	require.NoError(t, loop.Do(ctx, func(n *Navigator) {
		stats = n.Stats()
		active = n.Navigation().Active()
	}))
	assert.Equal(t, 1, stats.Recomputes)
	assert.Equal(t, 9, stats.Dropped)
	assert.Equal(t, []string{"B-item"}, active)

	require.NoError(t, loop.Click(ctx, TriggerMask))
	var revealed bool
	require.NoError(t, loop.Do(ctx, func(n *Navigator) { revealed = n.Panel().Revealed() }))
	assert.True(t, revealed)

	cancel()
	assert.True(t, errors.Is(<-runErr, context.Canceled))
}

func TestLoopPostAfterCancel(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, loop.Scroll(ctx), context.Canceled)
}
