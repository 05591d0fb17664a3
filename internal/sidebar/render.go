package sidebar

import (
	"html/template"
	"io"
	"strings"
)

var navTemplate = template.Must(template.New("nav").Funcs(template.FuncMap{"classes": entryClasses}).Parse(
	`{{range .Sections}}<a href="{{.Href}}" id="{{.ID}}" class="{{classes .Entry}}">{{.Label}}</a>
<div class="` + ClassSection + `">{{range .Items}}
  <a href="{{.Href}}" id="{{.ID}}" class="{{classes .}}">{{.Label}}</a>{{end}}
</div>
{{end}}`))

// entryClasses returns the class attribute of an entry.
func entryClasses(e Entry) string {
	if e.Active {
		return e.Class + " " + ClassActive
	}
	return e.Class
}

// Render writes the contents of the navigation container: for each section
// its heading link followed by the collapsible block of its item links.
func (n *Navigation) Render(w io.Writer) error {
	return navTemplate.Execute(w, n)
}

// HTML renders the navigation to a string.
func (n *Navigation) HTML() (template.HTML, error) {
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}
