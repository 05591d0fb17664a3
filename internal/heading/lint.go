package heading

import (
	"fmt"
	"strings"
)

// formattingChars are markdown formatting characters that must not leak into
// heading text; they break generated anchors and sidebar labels.
const formattingChars = "`*_~#"

// Issue is a problem found in a single heading.
type Issue struct {
	HeadingID string
	Text      string
	Reason    string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: '%s' (%s)", i.HeadingID, i.Text, i.Reason)
}

// Lint reports headings that contain markdown formatting characters or have
// no id. Markdown headings are checked on their raw source.
func Lint(headings []Heading) []Issue {
	var issues []Issue
	for _, h := range headings {
		txt := h.Source
		if txt == "" {
			txt = h.Label
		}
		if strings.ContainsAny(txt, formattingChars) {
			issues = append(issues, Issue{HeadingID: h.ID, Text: txt, Reason: "contains markdown formatting"})
		}
		if h.ID == "" {
			issues = append(issues, Issue{Text: txt, Reason: "missing id"})
		}
	}
	return issues
}
