package heading

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Guide</title></head>
<body>
  <nav id="sidebar"><h2 id="nav-title">Not content</h2></nav>
  <div id="content">
    <h1 id="guide">Guide</h1>
    <h2 id="getting-started">Getting <em>Started</em></h2>
    <p>intro</p>
    <h3 id="install">Install</h3>
    <h3 id="configure">Configure</h3>
    <h3>No id here</h3>
    <h2 id="reference">Reference</h2>
    <h4 id="deep">Too deep</h4>
    <h3 id="flags">Flags</h3>
    <p><a href="#install">install</a> <a href="other.html#x">other</a> <a href="https://example.com/#y">ext</a></p>
  </div>
</body></html>`

func TestFromHTML(t *testing.T) {
	hs, err := FromHTML(strings.NewReader(samplePage), DefaultSelector)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}

	want := []Heading{
		{ID: "getting-started", Label: "Getting Started", Level: LevelSection},
		{ID: "install", Label: "Install", Level: LevelItem},
		{ID: "configure", Label: "Configure", Level: LevelItem},
		{ID: "reference", Label: "Reference", Level: LevelSection},
		{ID: "flags", Label: "Flags", Level: LevelItem},
	}
	if diff := cmp.Diff(want, hs); diff != "" {
		t.Errorf("FromHTML() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromHTMLNoContainer(t *testing.T) {
	page := `<html><body><h2 id="a">A</h2><h3 id="b">B</h3></body></html>`
	hs, err := FromHTML(strings.NewReader(page), DefaultSelector)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(hs) != 2 {
		t.Fatalf("got %d headings, want 2", len(hs))
	}
}

func TestFromHTMLEmpty(t *testing.T) {
	hs, err := FromHTML(strings.NewReader(`<div id="content"><p>nothing</p></div>`), DefaultSelector)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if len(hs) != 0 {
		t.Errorf("got %d headings, want 0", len(hs))
	}
}

func TestFromMarkdown(t *testing.T) {
	src := []byte("# Title\n\n## Getting Started\n\ntext\n\n### Install the *CLI*\n\n#### Deep\n\n## Reference\n")
	hs := FromMarkdown(src, DefaultSelector)

	if len(hs) != 3 {
		t.Fatalf("got %d headings, want 3: %+v", len(hs), hs)
	}
	if hs[0].ID != "getting-started" || hs[0].Level != LevelSection {
		t.Errorf("first heading = %+v", hs[0])
	}
	if hs[1].Label != "Install the CLI" || hs[1].Level != LevelItem {
		t.Errorf("second heading = %+v", hs[1])
	}
	if hs[1].Source != "Install the *CLI*" {
		t.Errorf("source = %q", hs[1].Source)
	}
	if hs[2].ID != "reference" {
		t.Errorf("third heading id = %q", hs[2].ID)
	}
}

func TestLint(t *testing.T) {
	hs := []Heading{
		{ID: "ok", Label: "Plain heading", Level: LevelSection},
		{ID: "code", Label: "Using Expect", Source: "Using `Expect`", Level: LevelItem},
		{ID: "", Label: "Orphan", Level: LevelItem},
	}
	issues := Lint(hs)
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(issues), issues)
	}
	if issues[0].HeadingID != "code" {
		t.Errorf("first issue = %v", issues[0])
	}
	if issues[1].Reason != "missing id" {
		t.Errorf("second issue = %v", issues[1])
	}
}

func TestAnchorsAndLinks(t *testing.T) {
	anchors, err := Anchors(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("Anchors: %v", err)
	}
	for _, id := range []string{"content", "install", "sidebar"} {
		if !anchors[id] {
			t.Errorf("anchor %q missing", id)
		}
	}

	links, err := Links(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	if len(links) != 2 || links[0] != "#install" || links[1] != "other.html#x" {
		t.Errorf("links = %v", links)
	}
}
