package widgets

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ift-institute/ift-site/internal/forms"
	"github.com/ift-institute/ift-site/internal/logging"
	"github.com/ift-institute/ift-site/internal/markdown"
	"github.com/ift-institute/ift-site/internal/session"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// Env carries the collaborators every editable widget shares: the content
// session, the markdown engine for text rendering and the form renderer for
// the collection edit modal. One Env serves a whole request.
type Env struct {
	Session  *session.Session
	Markdown interfaces.MarkdownParser
	Forms    *forms.Renderer
	Logger   interfaces.Logger

	// BasePath prefixes the mutation endpoints the edit affordances post to,
	// "/api/cms" by default.
	BasePath string

	// ShapeChecks validates stored collection values at the read boundary;
	// a value that fails the check renders the declared defaults instead.
	ShapeChecks bool
}

// NewEnv constructs a widget environment with working defaults for any
// collaborator left nil.
func NewEnv(s *session.Session) *Env {
	return &Env{
		Session:     s,
		Markdown:    markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		Forms:       forms.NewRenderer(),
		Logger:      logging.NoOp(),
		BasePath:    "/api/cms",
		ShapeChecks: true,
	}
}

func (e *Env) basePath() string {
	if e.BasePath == "" {
		return "/api/cms"
	}
	return strings.TrimSuffix(e.BasePath, "/")
}

func (e *Env) editing() bool {
	return e.Session != nil && e.Session.IsEditing()
}

// Content returns the stored value under key, or def when nothing is stored
// or no session is wired.
func (e *Env) Content(key string, def any) any {
	return e.content(key, def)
}

func (e *Env) content(key string, def any) any {
	if e.Session == nil {
		return def
	}
	return e.Session.GetContent(key, def)
}

func (e *Env) stringContent(key, def string) string {
	value := e.content(key, def)
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// renderMarkdown converts inline markdown to HTML, falling back to escaped
// plain text when the engine fails.
func (e *Env) renderMarkdown(source string) template.HTML {
	if e.Markdown == nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	out, err := e.Markdown.Parse([]byte(source))
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("markdown render failed, using plain text", "error", err)
		}
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(out)
}

func attr(s string) string {
	return template.HTMLEscapeString(s)
}
