// Package site renders a directory of markdown pages into a static HTML
// site whose pages carry a heading sidebar, and serves it for preview.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/sidenav/internal/heading"
	"github.com/ziadkadry99/sidenav/internal/logging"
	"github.com/ziadkadry99/sidenav/internal/progress"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
	"github.com/ziadkadry99/sidenav/internal/walker"
)

// invalidMarker flags a code sample as a counter-example.
const invalidMarker = "/* === INVALID === */"

// Generator converts markdown documentation into a static HTML site.
type Generator struct {
	ContentDir  string
	OutputDir   string
	ProjectName string
	LogoPath    string
	Include     []string
	Exclude     []string
	Selector    heading.Selector
	Orphans     sidebar.OrphanPolicy

	Logger   *zap.Logger
	Reporter progress.Reporter

	mu   sync.RWMutex
	last *Result
}

// NewGenerator creates a Generator with the default heading selector.
func NewGenerator(contentDir, outputDir, projectName string) *Generator {
	return &Generator{
		ContentDir:  contentDir,
		OutputDir:   outputDir,
		ProjectName: projectName,
		Selector:    heading.DefaultSelector,
	}
}

// Page is one generated page.
type Page struct {
	Source   string              `json:"source"` // slash-separated markdown path
	Path     string              `json:"path"`   // slash-separated HTML path
	Title    string              `json:"title"`
	Hash     string              `json:"hash"`
	Headings []heading.Heading   `json:"headings"`
	Nav      *sidebar.Navigation `json:"nav"`
}

// Result describes one site generation.
type Result struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Pages       []*Page   `json:"pages"`
}

// Page returns the page with the given HTML path.
func (r *Result) Page(path string) (*Page, bool) {
	for _, p := range r.Pages {
		if p.Path == path {
			return p, true
		}
	}
	return nil, false
}

// Last returns the result of the most recent successful Generate, or nil.
func (g *Generator) Last() *Result {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.last
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	NavHTML     template.HTML
	PagesHTML   template.HTML
	BasePath    string
	LogoFile    string
	BuildID     string
	SectionTag  string
	ItemTag     string
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// Generate builds the full static site from markdown files.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	logger := logging.OrNop(g.Logger)
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: g.ContentDir,
		Include: g.Include,
		Exclude: g.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("walking content dir: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", g.ContentDir)
	}

	sources := make(map[string][]byte, len(files))
	titles := make(map[string]string, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		sources[f.RelPath] = content
		titles[f.RelPath] = extractTitle(string(content), f.RelPath)
		paths = append(paths, f.RelPath)
	}
	tree := BuildPageTree(paths, titles)
	logger.Debug("page tree built", zap.Int("pages", tree.PageCount()))

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, err
	}

	logoFile, err := g.copyLogo()
	if err != nil {
		return nil, fmt.Errorf("copying logo: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	result := &Result{
		BuildID:     uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
	}
	md := newMarkdown()

	reporter.Start(len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := g.renderPage(md, tmpl, tree, f, sources[f.RelPath], titles[f.RelPath], logoFile, result.BuildID)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		if dropped := page.Nav.Dropped(); len(dropped) > 0 {
			logger.Warn("dropped sub-headings before first section",
				zap.String("page", f.RelPath), zap.Int("count", len(dropped)))
		}
		logger.Debug("rendered page",
			zap.String("page", page.Path),
			zap.Int("sections", page.Nav.SectionCount()),
			zap.Int("items", page.Nav.ItemCount()))
		result.Pages = append(result.Pages, page)
		reporter.Update(i+1, f.RelPath)
	}
	reporter.Finish()

	if err := g.writeAssets(result); err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.last = result
	g.mu.Unlock()

	logger.Info("site generated",
		zap.String("build_id", result.BuildID),
		zap.Int("pages", len(result.Pages)),
		zap.String("output", g.OutputDir))
	return result, nil
}

// renderPage converts a single markdown file to an HTML page.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, tree *PageTree, f walker.FileInfo, content []byte, title, logoFile, buildID string) (*Page, error) {
	var htmlBuf bytes.Buffer
	if err := md.Convert(content, &htmlBuf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	body, headings, err := g.postProcess(rewriteMDLinks(htmlBuf.String()))
	if err != nil {
		return nil, err
	}

	nav, err := sidebar.Build(headings, sidebar.WithOrphanPolicy(g.Orphans))
	if err != nil {
		return nil, err
	}
	navHTML, err := nav.HTML()
	if err != nil {
		return nil, fmt.Errorf("rendering sidebar: %w", err)
	}

	htmlRelPath := mdPathToHTML(f.RelPath)
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, err
	}

	basePath := strings.Repeat("../", strings.Count(htmlRelPath, "/"))

	data := pageData{
		Title:       title,
		ProjectName: g.ProjectName,
		Content:     template.HTML(body),
		NavHTML:     navHTML,
		PagesHTML:   template.HTML(tree.ToHTML(f.RelPath, basePath)),
		BasePath:    basePath,
		LogoFile:    logoFile,
		BuildID:     buildID,
		SectionTag:  g.sectionTag(),
		ItemTag:     g.itemTag(),
	}

	if err := writePage(outPath, tmpl, data); err != nil {
		return nil, err
	}

	return &Page{
		Source:   f.RelPath,
		Path:     htmlRelPath,
		Title:    title,
		Hash:     f.ContentHash,
		Headings: headings,
		Nav:      nav,
	}, nil
}

// postProcess parses the rendered page body, marks invalid code samples,
// and reads the sidebar headings from it.
func (g *Generator) postProcess(body string) (string, []heading.Heading, error) {
	containerID := g.Selector.ContainerID
	if containerID == "" {
		containerID = heading.DefaultSelector.ContainerID
	}
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "id", Val: containerID}},
	}

	nodes, err := html.ParseFragment(strings.NewReader(body), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", nil, fmt.Errorf("parse rendered html: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	markInvalid(container)
	sel := g.Selector
	sel.ContainerID = containerID
	headings := heading.FromNode(container, sel)

	var out bytes.Buffer
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return "", nil, fmt.Errorf("render html: %w", err)
		}
	}
	return out.String(), headings, nil
}

func (g *Generator) sectionTag() string {
	if g.Selector.SectionTag == "" {
		return heading.DefaultSelector.SectionTag
	}
	return g.Selector.SectionTag
}

func (g *Generator) itemTag() string {
	if g.Selector.ItemTag == "" {
		return heading.DefaultSelector.ItemTag
	}
	return g.Selector.ItemTag
}

// markInvalid adds the "invalid" class to code blocks containing the
// invalid marker.
func markInvalid(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "pre" {
		if strings.Contains(heading.TextContent(n), invalidMarker) {
			addClass(n, "invalid")
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		markInvalid(c)
	}
}

func addClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Key == "class" {
			n.Attr[i].Val = strings.TrimSpace(a.Val + " " + class)
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}

// copyLogo copies the configured logo into the output directory and returns
// its file name, or "" when no logo is configured.
func (g *Generator) copyLogo() (string, error) {
	if g.LogoPath == "" {
		return "", nil
	}
	data, err := os.ReadFile(g.LogoPath)
	if err != nil {
		return "", err
	}
	name := "logo" + filepath.Ext(g.LogoPath)
	if err := os.WriteFile(filepath.Join(g.OutputDir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// writeAssets writes the stylesheet, script, search index, and manifest.
func (g *Generator) writeAssets(result *Result) error {
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return err
	}
	if err := WriteSearchIndex(BuildSearchIndex(result.Pages), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}
	if err := writeJSON(filepath.Join(g.OutputDir, "manifest.json"), NewManifest(result)); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// writePage renders a page in memory and writes it in one call, so a failed
// render never leaves a partial file behind.
func writePage(path string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	base := filepath.Base(relPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// rewriteMDLinks changes .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	content = strings.ReplaceAll(content, `.md"`, `.html"`)
	return strings.ReplaceAll(content, `.md#`, `.html#`)
}
