package widgets

import (
	"fmt"
	"html/template"
	"strings"
)

// Image renders one image value, a URL or data URI under a single key.
// Mutation is replace-only through the upload endpoint; a rejected MIME
// type never reaches the content map.
type Image struct {
	Key     string
	Default string

	Alt   string
	Class string
}

// Image renders the widget against the current session state.
func (e *Env) Image(w Image) template.HTML {
	src := e.stringContent(w.Key, w.Default)

	var b strings.Builder
	fmt.Fprintf(&b, `<img src="%s" alt="%s" class="%s" data-cms-key="%s">`,
		attr(src), attr(w.Alt), attr(w.Class), attr(w.Key))

	if e.editing() {
		fmt.Fprintf(&b, `<form class="cms-edit cms-edit-image" method="post" enctype="multipart/form-data" action="%s/upload">`,
			e.basePath())
		fmt.Fprintf(&b, `<input type="hidden" name="key" value="%s">`, attr(w.Key))
		b.WriteString(`<input type="hidden" name="kind" value="image">`)
		b.WriteString(`<input type="file" name="file" accept="image/*">`)
		b.WriteString(`<button type="submit" class="cms-save">Replace</button></form>`)
	}
	return template.HTML(b.String())
}
