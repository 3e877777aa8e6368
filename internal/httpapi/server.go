package httpapi

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ift-institute/ift-site/internal/forms"
	"github.com/ift-institute/ift-site/internal/logging"
	"github.com/ift-institute/ift-site/internal/markdown"
	"github.com/ift-institute/ift-site/internal/session"
	"github.com/ift-institute/ift-site/internal/site"
	"github.com/ift-institute/ift-site/internal/widgets"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// Server is the process surface: the rendered marketing pages plus the CMS
// and auth APIs the editing affordances post to.
type Server struct {
	router *chi.Mux

	session       *session.Session
	authenticator interfaces.Authenticator
	catalog       *site.Catalog
	collections   map[string]widgets.Collection

	markdown interfaces.MarkdownParser
	forms    *forms.Renderer
	logger   interfaces.Logger

	basePath    string
	siteTitle   string
	maxUpload   int64
	shapeChecks bool
}

// Option configures the server.
type Option func(*Server)

// WithAuthenticator enables the auth endpoints.
func WithAuthenticator(a interfaces.Authenticator) Option {
	return func(s *Server) { s.authenticator = a }
}

// WithLogger sets the request logger.
func WithLogger(l interfaces.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithBasePath mounts the CMS API under a prefix other than /api/cms.
func WithBasePath(p string) Option {
	return func(s *Server) { s.basePath = p }
}

// WithSiteTitle sets the rendered page title.
func WithSiteTitle(title string) Option {
	return func(s *Server) { s.siteTitle = title }
}

// WithMaxUpload caps upload payloads in bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) { s.maxUpload = n }
}

// WithShapeChecks toggles read-boundary validation of stored collection
// values.
func WithShapeChecks(enabled bool) Option {
	return func(s *Server) { s.shapeChecks = enabled }
}

// New wires the routes. The session must already be loaded.
func New(sess *session.Session, catalog *site.Catalog, opts ...Option) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		session:     sess,
		catalog:     catalog,
		collections: site.Collections(),
		markdown:    markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		forms:       forms.NewRenderer(),
		logger:      logging.NoOp(),
		basePath:    "/api/cms",
		siteTitle:   "Institute for Future Technologies",
		maxUpload:   10 << 20,
		shapeChecks: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Route(joinPath(s.basePath, ""), func(r chi.Router) {
		r.Get("/content", s.handleContentList)
		r.Put("/content/{key}", s.handleContentUpdate)
		r.Post("/content/{key}", s.handleContentUpdate)
		r.Post("/edit-mode", s.handleEditMode)
		r.Post("/upload", s.handleUpload)
		r.Route("/collections/{key}", func(r chi.Router) {
			r.Post("/items", s.handleItemAdd)
			r.Post("/items/{id}", s.handleItemUpdate)
			r.Post("/items/{id}/delete", s.handleItemDelete)
			r.Post("/items/{id}/move-up", s.handleItemMove((*widgets.Env).MoveItemUp))
			r.Post("/items/{id}/move-down", s.handleItemMove((*widgets.Env).MoveItemDown))
		})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
	})

	r.Get("/", s.handlePage)
	r.Get("/{page}", s.handlePage)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// env builds the widget environment for one request.
func (s *Server) env() *widgets.Env {
	return &widgets.Env{
		Session:     s.session,
		Markdown:    s.markdown,
		Forms:       s.forms,
		Logger:      s.logger,
		BasePath:    s.basePath,
		ShapeChecks: s.shapeChecks,
	}
}

func (s *Server) requireEditor(w http.ResponseWriter) bool {
	if s.session == nil || !s.session.CanEdit() {
		writeError(w, errForbidden)
		return false
	}
	return true
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}

// recoverer replaces a panicking render with a minimal diagnostic page
// instead of dropping the connection.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic while serving request",
					"path", r.URL.Path, "panic", fmt.Sprintf("%v", rec))
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, diagnosticPage)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

const diagnosticPage = `<!doctype html><html><head><title>Something went wrong</title></head>
<body><main><h1>Something went wrong</h1>
<p>The page could not be rendered. Please try again.</p></main></body></html>`

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "page")
	page, ok := s.catalog.BySlug(slug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	body := page.Render(s.env())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	title := page.Title
	if !strings.EqualFold(title, s.siteTitle) {
		title = title + " | " + s.siteTitle
	}
	fmt.Fprintf(w, pageShell, template.HTMLEscapeString(title), s.editBanner(), body)
}

const pageShell = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body>%s%s</body>
</html>`

func (s *Server) editBanner() template.HTML {
	if s.session == nil || !s.session.CanEdit() {
		return ""
	}
	label := "Enter Edit Mode"
	if s.session.IsEditing() {
		label = "Exit Edit Mode"
	}
	return template.HTML(fmt.Sprintf(
		`<form class="cms-banner" method="post" action="%s/edit-mode"><button type="submit">%s</button></form>`,
		joinPath(s.basePath, ""), label))
}
