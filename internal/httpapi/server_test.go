package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ift-institute/ift-site/internal/auth"
	"github.com/ift-institute/ift-site/internal/localstore"
	"github.com/ift-institute/ift-site/internal/session"
	"github.com/ift-institute/ift-site/internal/site"
)

type fixture struct {
	server  *Server
	session *session.Session
	flags   *localstore.AuthFlags
	auth    *auth.LocalAuthenticator
}

func newFixture(t *testing.T, editor bool) *fixture {
	t.Helper()
	dir := t.TempDir()

	flags := localstore.NewAuthFlags(filepath.Join(dir, "auth.json"))
	if editor {
		if err := flags.Set("admin", "admin@ift.edu"); err != nil {
			t.Fatal(err)
		}
	}

	sess := session.New(session.Options{
		Snapshot:  localstore.NewSnapshot(filepath.Join(dir, "cms.json"), nil),
		AuthFlags: flags,
		Privileged: func(role string) bool {
			return role == "admin" || role == "director" || role == "staff"
		},
	})
	sess.LoadData(context.Background())
	if editor {
		sess.ToggleEditMode()
	}

	catalog, err := site.NewCatalog()
	if err != nil {
		t.Fatal(err)
	}
	authenticator := auth.NewLocalAuthenticator(flags, nil, "admin@ift.edu", nil)

	return &fixture{
		server:  New(sess, catalog, WithAuthenticator(authenticator)),
		session: sess,
		flags:   flags,
		auth:    authenticator,
	}
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	f.session.Wait()
	return rec
}

func TestPages_RenderAndNotFound(t *testing.T) {
	f := newFixture(t, false)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Experiments in Building Futures") {
		t.Fatal("home page missing default hero copy")
	}

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/research", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Core Research Themes") {
		t.Fatalf("GET /research status = %d", rec.Code)
	}

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /no-such-page status = %d", rec.Code)
	}
}

func TestContentList(t *testing.T) {
	f := newFixture(t, false)
	f.session.UpdateContent(context.Background(), "hero-title", "Stored")
	f.session.Wait()

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/cms/content", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var payload struct {
		Content   map[string]any `json:"content"`
		IsEditing bool           `json:"is_editing"`
		CanEdit   bool           `json:"can_edit"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload.Content["hero-title"] != "Stored" {
		t.Fatalf("content = %v", payload.Content)
	}
	if payload.CanEdit || payload.IsEditing {
		t.Fatalf("flags = %+v", payload)
	}
}

func TestContentUpdate_RequiresPermission(t *testing.T) {
	f := newFixture(t, false)

	body := strings.NewReader(`{"value":"Hacked"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/cms/content/hero-title", body)
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(t, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := f.session.GetContent("hero-title", "default"); got != "default" {
		t.Fatalf("content changed: %v", got)
	}
}

func TestContentUpdate_JSON(t *testing.T) {
	f := newFixture(t, true)

	body := strings.NewReader(`{"value":"New Title"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/cms/content/hero-title", body)
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := f.session.GetContent("hero-title", "x"); got != "New Title" {
		t.Fatalf("content = %v", got)
	}
}

func TestContentUpdate_FormWithSecondary(t *testing.T) {
	f := newFixture(t, true)

	form := url.Values{}
	form.Set("value", "Engage")
	form.Set("secondary_key", "hero-button-url")
	form.Set("secondary_value", "https://ift.example.org")
	req := httptest.NewRequest(http.MethodPost, "/api/cms/content/hero-button", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "/")

	rec := f.do(t, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := f.session.GetContent("hero-button", "x"); got != "Engage" {
		t.Fatalf("value = %v", got)
	}
	if got := f.session.GetContent("hero-button-url", "x"); got != "https://ift.example.org" {
		t.Fatalf("secondary = %v", got)
	}
}

func TestEditModeToggle(t *testing.T) {
	f := newFixture(t, true)
	if !f.session.IsEditing() {
		t.Fatal("setup: expected Editing")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/cms/edit-mode", nil)
	req.Header.Set("Accept", "application/json")
	rec := f.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.session.IsEditing() {
		t.Fatal("toggle did not leave edit mode")
	}
}

func multipartUpload(t *testing.T, key, kind, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("key", key)
	mw.WriteField("kind", kind)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/cms/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestUpload_AcceptsImage(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, multipartUpload(t, "about-campus-image", "image", "campus.png", pngHeader))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	stored, _ := f.session.GetContent("about-campus-image", "").(string)
	if !strings.HasPrefix(stored, "data:image/png;base64,") {
		t.Fatalf("stored = %q", stored)
	}
}

func TestUpload_RejectsWrongMIMEWithoutWrite(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, multipartUpload(t, "about-campus-image", "image", "notes.txt", []byte("plain text payload")))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := f.session.GetContent("about-campus-image", "unchanged"); got != "unchanged" {
		t.Fatalf("content changed after rejected upload: %v", got)
	}
}

func TestCollectionAdd(t *testing.T) {
	f := newFixture(t, true)

	form := url.Values{}
	form.Set("name", "Cleo")
	form.Set("role", "Fellow")
	req := httptest.NewRequest(http.MethodPost, "/api/cms/collections/team-members-core/items", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	rec := f.do(t, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var added map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&added); err != nil {
		t.Fatal(err)
	}
	if added["name"] != "Cleo" || added["id"] == "" {
		t.Fatalf("added = %v", added)
	}
}

func TestCollectionAdd_RefusedAtCapacity(t *testing.T) {
	f := newFixture(t, true)

	// latest-events is capped at four slots.
	for range 2 {
		form := url.Values{}
		form.Set("title", "Filler")
		req := httptest.NewRequest(http.MethodPost, "/api/cms/collections/latest-events/items", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		if rec := f.do(t, req); rec.Code != http.StatusCreated {
			t.Fatalf("seed add status = %d", rec.Code)
		}
	}

	form := url.Values{}
	form.Set("title", "One Too Many")
	req := httptest.NewRequest(http.MethodPost, "/api/cms/collections/latest-events/items", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	rec := f.do(t, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestCollectionAdd_UnknownKey(t *testing.T) {
	f := newFixture(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/cms/collections/not-a-collection/items", nil)
	if rec := f.do(t, req); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthLoginLogout(t *testing.T) {
	f := newFixture(t, false)

	body := strings.NewReader(`{"email":"admin@ift.edu","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := f.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !f.session.CanEdit() {
		t.Fatal("CanEdit() = false after admin login")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec = f.do(t, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "admin@ift.edu") {
		t.Fatalf("me = %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	rec = f.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if f.session.CanEdit() || f.session.IsEditing() {
		t.Fatal("session kept permissions after logout")
	}
}

func TestAuthLogin_RejectsBadCredentials(t *testing.T) {
	f := newFixture(t, false)

	body := strings.NewReader(`{"email":"intruder@ift.edu","password":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	rec := f.do(t, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.session.CanEdit() {
		t.Fatal("CanEdit() = true after rejected login")
	}
}

func TestRecoverer_ReturnsDiagnosticPage(t *testing.T) {
	f := newFixture(t, false)
	f.server.router.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("render failed")
	})

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
