package heading

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML parses a rendered document and returns its section and item
// headings in document order. Headings without an id cannot be linked and
// are skipped.
func FromHTML(r io.Reader, sel Selector) ([]Heading, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return FromNode(doc, sel), nil
}

// FromNode is FromHTML over an already parsed tree.
func FromNode(doc *html.Node, sel Selector) []Heading {
	root := findByID(doc, sel.ContainerID)
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		root = doc
	}

	var headings []Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := sel.levelOf(n.Data); level != 0 {
				if id := Attr(n, "id"); id != "" {
					headings = append(headings, Heading{
						ID:    id,
						Label: TextContent(n),
						Level: level,
					})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return headings
}

// Anchors returns the set of element ids (and legacy <a name> targets) in a
// rendered document.
func Anchors(r io.Reader) (map[string]bool, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	anchors := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := Attr(n, "id"); id != "" {
				anchors[id] = true
			}
			if n.Data == "a" {
				if name := Attr(n, "name"); name != "" {
					anchors[name] = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return anchors, nil
}

// Links returns every relative href carrying a fragment ("#x", "page.html#x")
// in document order. Absolute URLs are not returned.
func Links(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := Attr(n, "href")
			if strings.Contains(href, "#") {
				if u, err := url.Parse(href); err == nil && u.Scheme == "" && u.Host == "" {
					links = append(links, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// TextContent concatenates the text nodes under n, trimmed.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findByID(n *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	if n.Type == html.ElementNode && Attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
