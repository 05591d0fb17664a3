// Package sidebar builds the two-level navigation of a page from its
// headings and tracks which entries are highlighted as active.
//
// A Navigation is a list of sections, each owning the item entries that
// followed its heading. Every heading id (section or item) maps to the id of
// its owning section. The active flags are the only mutable state.
package sidebar

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/sidenav/internal/heading"
)

// Class vocabulary shared with the page stylesheet and script.
const (
	ClassHeading = "sidebar-heading"
	ClassItem    = "sidebar-item"
	ClassSection = "sidebar-section"
	ClassActive  = "active"
	ClassReveal  = "reveal-sidebar"
)

// EntrySuffix is appended to a heading id to form its entry id.
const EntrySuffix = "-item"

var (
	// ErrOrphanItem is returned when an item heading precedes every section heading.
	ErrOrphanItem = errors.New("sidebar: item heading before any section heading")
	// ErrDuplicateID is returned when two headings share an id.
	ErrDuplicateID = errors.New("sidebar: duplicate heading id")
	// ErrUnknownEntry is returned when activating a heading with no entry.
	ErrUnknownEntry = errors.New("sidebar: no entry for heading")
)

// OrphanPolicy decides what Build does with item headings that have no
// owning section.
type OrphanPolicy int

const (
	OrphanReject OrphanPolicy = iota
	OrphanDrop
)

// Entry is a navigation link mirroring one heading.
type Entry struct {
	ID        string `json:"id"`
	HeadingID string `json:"heading_id"`
	Href      string `json:"href"`
	Label     string `json:"label"`
	Class     string `json:"class"`
	Active    bool   `json:"active"`
}

// Section is a section-level entry with the items nested under it.
type Section struct {
	Entry
	Items []*Entry `json:"items"`
}

// Navigation is the sidebar tree of one page.
type Navigation struct {
	Sections []*Section `json:"sections"`

	group   map[string]string // heading id -> owning section id
	entries map[string]*Entry // heading id -> entry
	dropped []heading.Heading
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	orphans OrphanPolicy
}

// WithOrphanPolicy sets how item headings preceding every section are treated.
func WithOrphanPolicy(p OrphanPolicy) Option {
	return func(o *buildOptions) { o.orphans = p }
}

// EntryID returns the id of the navigation entry for a heading id.
func EntryID(headingID string) string {
	return headingID + EntrySuffix
}

// Build creates the navigation from headings in document order in a single
// pass. An empty heading list yields an empty, valid navigation.
func Build(headings []heading.Heading, opts ...Option) (*Navigation, error) {
	o := buildOptions{orphans: OrphanReject}
	for _, opt := range opts {
		opt(&o)
	}

	nav := &Navigation{
		group:   make(map[string]string, len(headings)),
		entries: make(map[string]*Entry, len(headings)),
	}

	var current *Section
	for _, h := range headings {
		if _, dup := nav.entries[h.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, h.ID)
		}

		entry := Entry{
			ID:        EntryID(h.ID),
			HeadingID: h.ID,
			Href:      "#" + h.ID,
			Label:     h.Label,
		}

		switch h.Level {
		case heading.LevelSection:
			entry.Class = ClassHeading
			current = &Section{Entry: entry}
			nav.Sections = append(nav.Sections, current)
			nav.entries[h.ID] = &current.Entry
		case heading.LevelItem:
			if current == nil {
				if o.orphans == OrphanDrop {
					nav.dropped = append(nav.dropped, h)
					continue
				}
				return nil, fmt.Errorf("%w: %q", ErrOrphanItem, h.ID)
			}
			entry.Class = ClassItem
			item := &entry
			current.Items = append(current.Items, item)
			nav.entries[h.ID] = item
		default:
			return nil, fmt.Errorf("sidebar: heading %q has unknown level %v", h.ID, h.Level)
		}

		nav.group[h.ID] = current.HeadingID
	}

	return nav, nil
}

// GroupOf returns the id of the section heading that owns headingID.
func (n *Navigation) GroupOf(headingID string) (string, bool) {
	g, ok := n.group[headingID]
	return g, ok
}

// Entry returns the navigation entry of a heading.
func (n *Navigation) Entry(headingID string) (*Entry, bool) {
	e, ok := n.entries[headingID]
	return e, ok
}

// Dropped returns the orphan headings left out under OrphanDrop.
func (n *Navigation) Dropped() []heading.Heading { return n.dropped }

// SectionCount returns the number of top-level entries.
func (n *Navigation) SectionCount() int { return len(n.Sections) }

// ItemCount returns the number of item entries across all sections.
func (n *Navigation) ItemCount() int {
	total := 0
	for _, s := range n.Sections {
		total += len(s.Items)
	}
	return total
}

// Empty reports whether the navigation has no entries.
func (n *Navigation) Empty() bool { return len(n.Sections) == 0 }

// Activate clears every active entry, then marks the heading's own entry
// and its owning section's entry active. An unknown heading returns
// ErrUnknownEntry and leaves the current highlighting untouched.
func (n *Navigation) Activate(headingID string) error {
	entry, ok := n.entries[headingID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntry, headingID)
	}
	group, ok := n.entries[n.group[headingID]]
	if !ok {
		return fmt.Errorf("%w: group of %q", ErrUnknownEntry, headingID)
	}

	n.ClearActive()
	entry.Active = true
	group.Active = true
	return nil
}

// ClearActive removes the active flag from every entry.
func (n *Navigation) ClearActive() {
	for _, e := range n.entries {
		e.Active = false
	}
}

// Active returns the ids of the active entries in document order.
func (n *Navigation) Active() []string {
	var ids []string
	for _, s := range n.Sections {
		if s.Active {
			ids = append(ids, s.ID)
		}
		for _, it := range s.Items {
			if it.Active {
				ids = append(ids, it.ID)
			}
		}
	}
	return ids
}
