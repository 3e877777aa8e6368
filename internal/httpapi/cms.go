package httpapi

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ift-institute/ift-site/internal/collection"
	"github.com/ift-institute/ift-site/internal/contentstore"
	"github.com/ift-institute/ift-site/internal/forms"
	"github.com/ift-institute/ift-site/internal/media"
	"github.com/ift-institute/ift-site/internal/widgets"
)

func (s *Server) handleContentList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"content":    s.session.Data(),
		"is_editing": s.session.IsEditing(),
		"can_edit":   s.session.CanEdit(),
	})
}

type contentUpdateRequest struct {
	Value any `json:"value"`
}

// handleContentUpdate stores one value. The edit affordances post forms; API
// clients send JSON.
func (s *Server) handleContentUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w) {
		return
	}
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" {
		writeError(w, contentstore.ErrKeyRequired)
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req contentUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
			return
		}
		s.session.UpdateContent(r.Context(), key, req.Value)
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": req.Value})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid form body"})
		return
	}
	value := r.PostForm.Get("value")
	s.session.UpdateContent(r.Context(), key, value)

	// A linked secondary field saves in the same submission.
	if secondaryKey := strings.TrimSpace(r.PostForm.Get("secondary_key")); secondaryKey != "" {
		if r.PostForm.Has("secondary_value") {
			s.session.UpdateContent(r.Context(), secondaryKey, r.PostForm.Get("secondary_value"))
		}
	}
	s.redirectBack(w, r)
}

func (s *Server) handleEditMode(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w) {
		return
	}
	s.session.ToggleEditMode()
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{"is_editing": s.session.IsEditing()})
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, media.ErrTooLarge)
		return
	}

	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		writeError(w, contentstore.ErrKeyRequired)
		return
	}
	kind := media.Kind(r.FormValue("kind"))
	if kind == "" {
		kind = media.KindImage
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "unreadable upload"})
		return
	}

	mimeType, err := media.Validate(kind, header.Filename, data, s.maxUpload)
	if err != nil {
		writeError(w, err)
		return
	}

	uri := media.DataURI(mimeType, data)
	s.session.UpdateContent(r.Context(), key, uri)

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "mime": mimeType, "value": uri})
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) resolveCollection(w http.ResponseWriter, r *http.Request) (widgets.Collection, bool) {
	key := chi.URLParam(r, "key")
	c, ok := s.collections[key]
	if !ok {
		http.NotFound(w, r)
		return widgets.Collection{}, false
	}
	return c, true
}

func (s *Server) handleItemAdd(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w) {
		return
	}
	c, ok := s.resolveCollection(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid form body"})
		return
	}

	values := forms.Decode(c.Schema, r.PostForm, collection.Item{})
	added, err := s.env().AddItem(r.Context(), c, values)
	if err != nil {
		writeError(w, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, added)
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w) {
		return
	}
	c, ok := s.resolveCollection(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid form body"})
		return
	}

	changes := forms.Decode(c.Schema, r.PostForm, collection.Item{})
	if err := s.env().UpdateItem(r.Context(), c, chi.URLParam(r, "id"), changes); err != nil {
		writeError(w, err)
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireEditor(w) {
		return
	}
	c, ok := s.resolveCollection(w, r)
	if !ok {
		return
	}
	if err := s.env().DeleteItem(r.Context(), c, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) handleItemMove(op func(*widgets.Env, context.Context, widgets.Collection, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireEditor(w) {
			return
		}
		c, ok := s.resolveCollection(w, r)
		if !ok {
			return
		}
		if err := op(s.env(), r.Context(), c, chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		s.redirectBack(w, r)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// redirectBack returns the editor to the page the form lives on.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
