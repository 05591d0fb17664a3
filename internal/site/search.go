package site

import (
	"encoding/json"
	"os"
	"time"
)

// SearchEntry is one searchable heading of the site.
type SearchEntry struct {
	Path    string `json:"path"`    // page HTML path with anchor
	Page    string `json:"page"`    // page title
	Section string `json:"section"` // label of the owning section
	Title   string `json:"title"`   // heading label
}

// BuildSearchIndex lists every sidebar entry of every page, in page and
// document order.
func BuildSearchIndex(pages []*Page) []SearchEntry {
	var entries []SearchEntry
	for _, p := range pages {
		entries = append(entries, SearchEntry{Path: p.Path, Page: p.Title, Title: p.Title})
		for _, s := range p.Nav.Sections {
			entries = append(entries, SearchEntry{
				Path:    p.Path + s.Href,
				Page:    p.Title,
				Section: s.Label,
				Title:   s.Label,
			})
			for _, it := range s.Items {
				entries = append(entries, SearchEntry{
					Path:    p.Path + it.Href,
					Page:    p.Title,
					Section: s.Label,
					Title:   it.Label,
				})
			}
		}
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	if entries == nil {
		entries = []SearchEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// Manifest summarizes a build for the preview server and live reload.
type Manifest struct {
	BuildID     string         `json:"build_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Pages       []ManifestPage `json:"pages"`
}

// ManifestPage is one page of a Manifest.
type ManifestPage struct {
	Path     string `json:"path"`
	Source   string `json:"source"`
	Title    string `json:"title"`
	Hash     string `json:"hash"`
	Sections int    `json:"sections"`
	Items    int    `json:"items"`
}

// NewManifest summarizes r.
func NewManifest(r *Result) Manifest {
	m := Manifest{BuildID: r.BuildID, GeneratedAt: r.GeneratedAt, Pages: []ManifestPage{}}
	for _, p := range r.Pages {
		m.Pages = append(m.Pages, ManifestPage{
			Path:     p.Path,
			Source:   p.Source,
			Title:    p.Title,
			Hash:     p.Hash,
			Sections: p.Nav.SectionCount(),
			Items:    p.Nav.ItemCount(),
		})
	}
	return m
}
