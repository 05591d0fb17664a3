package site

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ziadkadry99/sidenav/internal/heading"
	"github.com/ziadkadry99/sidenav/internal/walker"
)

// Problem is a documentation defect found by a check.
type Problem struct {
	Page   string // slash-separated path of the offending page
	Detail string
}

func (p Problem) String() string {
	return p.Page + ": " + p.Detail
}

// CheckHeadings lints the raw markdown headings of every page.
func CheckHeadings(files []walker.FileInfo, sel heading.Selector) ([]Problem, error) {
	var problems []Problem
	for _, f := range files {
		src, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		for _, issue := range heading.Lint(heading.FromMarkdown(src, sel)) {
			problems = append(problems, Problem{Page: f.RelPath, Detail: issue.String()})
		}
	}
	return problems, nil
}

// CheckLinks verifies that every relative link with a fragment in the
// generated site resolves to an element id of its target page.
func CheckLinks(siteDir string) ([]Problem, error) {
	pages := map[string]string{} // slash path -> absolute path
	err := filepath.WalkDir(siteDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		rel, err := filepath.Rel(siteDir, p)
		if err != nil {
			return err
		}
		pages[filepath.ToSlash(rel)] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking site dir: %w", err)
	}

	anchorCache := map[string]map[string]bool{}
	anchorsOf := func(page string) (map[string]bool, error) {
		if a, ok := anchorCache[page]; ok {
			return a, nil
		}
		f, err := os.Open(pages[page])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		a, err := heading.Anchors(f)
		if err != nil {
			return nil, err
		}
		anchorCache[page] = a
		return a, nil
	}

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)

	var problems []Problem
	for _, name := range names {
		f, err := os.Open(pages[name])
		if err != nil {
			return nil, err
		}
		links, err := heading.Links(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		for _, link := range links {
			target, fragment, _ := strings.Cut(link, "#")
			targetPage := name
			if target != "" {
				targetPage = path.Clean(path.Join(path.Dir(name), target))
			}
			if _, ok := pages[targetPage]; !ok {
				problems = append(problems, Problem{Page: name, Detail: fmt.Sprintf("'%s': page %s not found", link, targetPage)})
				continue
			}
			if fragment == "" {
				continue
			}
			anchors, err := anchorsOf(targetPage)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", targetPage, err)
			}
			if !anchors[fragment] {
				problems = append(problems, Problem{Page: name, Detail: fmt.Sprintf("'%s': anchor not found", link)})
			}
		}
	}
	return problems, nil
}
