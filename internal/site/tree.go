package site

import (
	"fmt"
	"html"
	"path/filepath"
	"sort"
	"strings"
)

// PageTree is a node in the cross-page index shown above the heading
// navigation. Directories group pages; leaves are pages.
type PageTree struct {
	Name     string
	Title    string // Display name: page H1, or formatted directory name.
	Path     string // Pages: slash-separated source path. Dirs: directory path.
	IsDir    bool
	Children []*PageTree
}

// BuildPageTree constructs a PageTree from relative markdown paths.
// titles maps a relative path to its display title.
func BuildPageTree(paths []string, titles map[string]string) *PageTree {
	root := &PageTree{Name: "", IsDir: true}

	for _, p := range paths {
		p = filepath.ToSlash(p)
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &PageTree{Name: part, IsDir: !isLast}
				if isLast {
					child.Path = p
					child.Title = titles[p]
					if child.Title == "" {
						child.Title = strings.TrimSuffix(part, filepath.Ext(part))
					}
				} else {
					child.Path = strings.Join(parts[:i+1], "/")
					child.Title = formatDirName(part)
				}
				current.Children = append(current.Children, child)
			}
			current = child
		}
	}

	root.sort()
	return root
}

func (t *PageTree) child(name string) *PageTree {
	for _, c := range t.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// sort orders children recursively: the index page first, then pages, then
// directories, each alphabetically.
func (t *PageTree) sort() {
	weight := func(n *PageTree) int {
		switch {
		case !n.IsDir && isIndexPage(n.Name):
			return 0
		case !n.IsDir:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(t.Children, func(i, j int) bool {
		a, b := t.Children[i], t.Children[j]
		if wa, wb := weight(a), weight(b); wa != wb {
			return wa < wb
		}
		return a.Name < b.Name
	})
	for _, c := range t.Children {
		if c.IsDir {
			c.sort()
		}
	}
}

// PageCount returns the number of pages under t.
func (t *PageTree) PageCount() int {
	if !t.IsDir {
		return 1
	}
	n := 0
	for _, c := range t.Children {
		n += c.PageCount()
	}
	return n
}

// ToHTML renders the tree as nested lists. activePath is the source path of
// the current page; basePath is the relative prefix back to the site root.
func (t *PageTree) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	t.render(&b, activePath, basePath)
	return b.String()
}

func (t *PageTree) render(b *strings.Builder, activePath, basePath string) {
	if len(t.Children) == 0 {
		return
	}
	b.WriteString(`<ul class="pages">` + "\n")
	for _, c := range t.Children {
		if c.IsDir {
			open := ""
			if strings.HasPrefix(activePath, c.Path+"/") {
				open = " open"
			}
			fmt.Fprintf(b, `<li class="pages-dir"><details%s><summary>%s</summary>`+"\n", open, html.EscapeString(c.Title))
			c.render(b, activePath, basePath)
			b.WriteString("</details></li>\n")
			continue
		}
		class := "pages-page"
		if c.Path == activePath {
			class += " active"
		}
		fmt.Fprintf(b, `<li class="%s"><a href="%s%s">%s</a></li>`+"\n",
			class, basePath, mdPathToHTML(c.Path), html.EscapeString(c.Title))
	}
	b.WriteString("</ul>\n")
}

func isIndexPage(name string) bool {
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	return base == "index" || base == "readme"
}

// mdPathToHTML converts a markdown path to its HTML equivalent. README pages
// become index pages of their directory.
func mdPathToHTML(p string) string {
	ext := filepath.Ext(p)
	if ext == "" {
		return p
	}
	stem := strings.TrimSuffix(p, ext)
	if strings.EqualFold(filepath.Base(stem), "readme") {
		stem = strings.TrimSuffix(stem, filepath.Base(stem)) + "index"
	}
	return stem + ".html"
}

// formatDirName converts a directory name to a human-readable display name.
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
