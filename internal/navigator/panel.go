package navigator

import "github.com/ziadkadry99/sidenav/internal/sidebar"

// Panel is the container whose reveal class shows the sidebar on narrow
// viewports.
type Panel struct {
	revealed bool
}

// Toggle flips the reveal class.
func (p *Panel) Toggle() { p.revealed = !p.revealed }

// Revealed reports whether the sidebar is shown.
func (p *Panel) Revealed() bool { return p.revealed }

// Classes returns the panel's class list.
func (p *Panel) Classes() []string {
	if p.revealed {
		return []string{sidebar.ClassReveal}
	}
	return nil
}
