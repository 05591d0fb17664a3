// Package heading reads the section and sub-item headings of a document in
// document order, from either rendered HTML or markdown source.
package heading

import (
	"fmt"
	"strings"
)

// Level distinguishes section headings from the sub-items nested under them.
type Level int

const (
	LevelSection Level = iota + 1
	LevelItem
)

func (l Level) String() string {
	switch l {
	case LevelSection:
		return "section"
	case LevelItem:
		return "item"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Heading is one navigable heading of a document.
type Heading struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Level Level  `json:"level"`

	// Source is the raw markdown text of the heading when it was read from
	// markdown; empty for headings read from HTML.
	Source string `json:"-"`
}

// Selector picks the headings that feed the sidebar.
type Selector struct {
	ContainerID string // id of the element scoping the scan; whole body if not found
	SectionTag  string // e.g. "h2"
	ItemTag     string // e.g. "h3"
}

// DefaultSelector matches "#content h2,h3".
var DefaultSelector = Selector{ContainerID: "content", SectionTag: "h2", ItemTag: "h3"}

// levelOf maps an element tag to a heading level under sel, or 0.
func (sel Selector) levelOf(tag string) Level {
	switch {
	case strings.EqualFold(tag, sel.SectionTag):
		return LevelSection
	case strings.EqualFold(tag, sel.ItemTag):
		return LevelItem
	}
	return 0
}

// rank returns the numeric rank of an "hN" tag, or 0.
func rank(tag string) int {
	tag = strings.ToLower(tag)
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}
