package widgets

import (
	"fmt"
	"html/template"
	"strings"
)

// Link renders an anchor whose href lives in the content map. External
// targets open in a new tab; in edit mode the anchor is replaced by a
// non-navigating wrapper so a click edits instead of leaving the page.
type Link struct {
	Key     string
	Default string

	Text  template.HTML
	Class string
}

// IsExternal reports whether href points off-site. Scheme-relative URLs
// count as external.
func IsExternal(href string) bool {
	return strings.HasPrefix(href, "http") || strings.HasPrefix(href, "//")
}

// Link renders the widget against the current session state.
func (e *Env) Link(w Link) template.HTML {
	href := e.stringContent(w.Key, w.Default)

	var b strings.Builder
	if e.editing() {
		fmt.Fprintf(&b, `<span class="cms-link-edit %s" data-cms-key="%s">%s`,
			attr(w.Class), attr(w.Key), w.Text)
		fmt.Fprintf(&b, `<form class="cms-edit cms-edit-link" method="post" action="%s/content/%s">`,
			e.basePath(), attr(w.Key))
		fmt.Fprintf(&b, `<input type="text" name="value" value="%s">`, attr(href))
		b.WriteString(`<button type="submit" class="cms-save">Save</button></form></span>`)
		return template.HTML(b.String())
	}

	if IsExternal(href) {
		fmt.Fprintf(&b, `<a href="%s" class="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
			attr(href), attr(w.Class), w.Text)
	} else {
		fmt.Fprintf(&b, `<a href="%s" class="%s">%s</a>`, attr(href), attr(w.Class), w.Text)
	}
	return template.HTML(b.String())
}
