package widgets

import (
	"fmt"
	"html/template"
	"strings"
)

// Text renders one markdown-capable text value. In edit mode it carries an
// inline form saving back to the value's key; a secondary field edits a
// linked key (a button label's URL, say) from the same affordance.
type Text struct {
	Key     string
	Default string

	// Multiline selects a textarea over a single-line input in edit mode.
	Multiline bool

	// Tag wraps the rendered value, "div" when empty. Class is applied to
	// the wrapper so the value keeps the page's styling in both modes.
	Tag   string
	Class string

	SecondaryKey     string
	SecondaryLabel   string
	SecondaryDefault string
}

// Text renders the widget against the current session state.
func (e *Env) Text(w Text) template.HTML {
	tag := w.Tag
	if tag == "" {
		tag = "div"
	}
	value := e.stringContent(w.Key, w.Default)
	rendered := e.renderMarkdown(value)

	var b strings.Builder
	class := strings.TrimSpace("cms-text " + w.Class)
	fmt.Fprintf(&b, `<%s class="%s" data-cms-key="%s">%s`, tag, attr(class), attr(w.Key), rendered)

	if e.editing() {
		b.WriteString(e.textEditor(w, value))
	}

	fmt.Fprintf(&b, `</%s>`, tag)
	return template.HTML(b.String())
}

func (e *Env) textEditor(w Text, value string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<form class="cms-edit cms-edit-text" method="post" action="%s/content/%s">`,
		e.basePath(), attr(w.Key))
	if w.Multiline {
		fmt.Fprintf(&b, `<textarea name="value" rows="4">%s</textarea>`, template.HTMLEscapeString(value))
	} else {
		fmt.Fprintf(&b, `<input type="text" name="value" value="%s">`, attr(value))
	}
	if w.SecondaryKey != "" {
		secondary := e.stringContent(w.SecondaryKey, w.SecondaryDefault)
		label := w.SecondaryLabel
		if label == "" {
			label = w.SecondaryKey
		}
		fmt.Fprintf(&b, `<label class="cms-secondary"><span>%s</span>`, template.HTMLEscapeString(label))
		fmt.Fprintf(&b, `<input type="hidden" name="secondary_key" value="%s">`, attr(w.SecondaryKey))
		fmt.Fprintf(&b, `<input type="text" name="secondary_value" data-cms-key="%s" value="%s">`,
			attr(w.SecondaryKey), attr(secondary))
		b.WriteString(`</label>`)
	}
	b.WriteString(`<button type="submit" class="cms-save">Save</button></form>`)
	return b.String()
}
