package widgets

import (
	"fmt"
	"html/template"
	"strings"
)

// Video renders one video value under a single key. Edit mode offers three
// mutations: upload a file, paste a URL directly, or Remove, which stores
// the empty string and drops the player.
type Video struct {
	Key     string
	Default string

	Class  string
	Poster string
}

// Video renders the widget against the current session state.
func (e *Env) Video(w Video) template.HTML {
	src := e.stringContent(w.Key, w.Default)

	var b strings.Builder
	if src == "" {
		fmt.Fprintf(&b, `<div class="cms-video-empty %s" data-cms-key="%s"></div>`,
			attr(w.Class), attr(w.Key))
	} else {
		fmt.Fprintf(&b, `<video src="%s" class="%s" data-cms-key="%s"`, attr(src), attr(w.Class), attr(w.Key))
		if w.Poster != "" {
			fmt.Fprintf(&b, ` poster="%s"`, attr(w.Poster))
		}
		b.WriteString(` controls></video>`)
	}

	if e.editing() {
		base := e.basePath()
		fmt.Fprintf(&b, `<form class="cms-edit cms-edit-video" method="post" enctype="multipart/form-data" action="%s/upload">`, base)
		fmt.Fprintf(&b, `<input type="hidden" name="key" value="%s">`, attr(w.Key))
		b.WriteString(`<input type="hidden" name="kind" value="video">`)
		b.WriteString(`<input type="file" name="file" accept="video/*">`)
		b.WriteString(`<button type="submit" class="cms-save">Upload</button></form>`)

		fmt.Fprintf(&b, `<form class="cms-edit cms-edit-video-url" method="post" action="%s/content/%s">`, base, attr(w.Key))
		fmt.Fprintf(&b, `<input type="text" name="value" value="%s" placeholder="Video URL">`, attr(src))
		b.WriteString(`<button type="submit" class="cms-save">Save URL</button></form>`)

		fmt.Fprintf(&b, `<form class="cms-edit cms-edit-video-remove" method="post" action="%s/content/%s">`, base, attr(w.Key))
		b.WriteString(`<input type="hidden" name="value" value="">`)
		b.WriteString(`<button type="submit" class="cms-remove">Remove</button></form>`)
	}
	return template.HTML(b.String())
}
