package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"snapbook/internal/blob"
	"snapbook/internal/http/handlers"
	applog "snapbook/internal/log"
	"snapbook/internal/memstore"
	"snapbook/internal/services"
)

type recorder struct {
	mu       sync.Mutex
	subjects []string
}

func (r *recorder) Notify(_ context.Context, subject, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects = append(r.subjects, subject)
	return nil
}

type harness struct {
	app    *fiber.App
	deps   *handlers.Deps
	stores handlers.Stores
	notes  *recorder
	csrf   string
}

// newHarness builds the full app on in-memory stores with the default
// roster, an admin (admin/admin123) and one customer (alice/secret1).
func newHarness(t *testing.T) *harness {
	t.Helper()
	stores := handlers.Stores{
		Accounts: memstore.NewAccounts(),
		Catalog:  memstore.NewPhotographers(),
		Bookings: memstore.NewBookings(),
		Sessions: memstore.NewSessions(),
	}
	hasher := services.Hasher{Cost: 4}
	ctx := context.Background()
	if err := services.Seed(ctx, stores.Catalog, stores.Accounts, hasher, services.SeedOptions{
		AdminUsername: "admin", AdminPassword: "admin123", PhotographerPassword: "photo123",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	notes := &recorder{}
	deps := handlers.NewDeps(stores, blob.NewLocal(t.TempDir()), notes, hasher, false)
	if _, err := deps.Auth.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret1", Confirm: "secret1",
	}); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	app := handlers.NewApp(deps, handlers.Options{
		TemplatesDir: "../../web/templates",
		StaticDir:    "../../web/static",
		MediaDir:     t.TempDir(),
		LoginMax:     100,
		RateMax:      1000,
	})
	h := &harness{app: app, deps: deps, stores: stores, notes: notes}

	resp := h.get(t, "/", "")
	h.csrf = cookie(resp, "csrf_")
	if h.csrf == "" {
		t.Fatal("csrf token missing")
	}
	return h
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func (h *harness) do(t *testing.T, req *http.Request, sid string) *http.Response {
	t.Helper()
	if h.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: h.csrf})
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func (h *harness) get(t *testing.T, path, sid string) *http.Response {
	t.Helper()
	return h.do(t, httptest.NewRequest(http.MethodGet, path, nil), sid)
}

func (h *harness) post(t *testing.T, path string, form url.Values, sid string) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", h.csrf)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(t, req, sid)
}

type upload struct {
	field, filename, contentType string
	data                         []byte
}

func (h *harness) postMultipart(t *testing.T, path string, form url.Values, file *upload, sid string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("csrf", h.csrf)
	for k, vs := range form {
		for _, v := range vs {
			_ = w.WriteField(k, v)
		}
	}
	if file != nil {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="` + file.field + `"; filename="` + file.filename + `"`}
		hdr["Content-Type"] = []string{file.contentType}
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(file.data)
	}
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.do(t, req, sid)
}

// login posts to the role's portal and returns the new sid.
func (h *harness) login(t *testing.T, role, username, password string) string {
	t.Helper()
	resp := h.post(t, "/login/"+role, url.Values{"username": {username}, "password": {password}}, "")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login %s as %s: expected 302, got %d", username, role, resp.StatusCode)
	}
	sid := cookie(resp, "sid")
	if sid == "" {
		t.Fatalf("login %s: sid cookie missing", username)
	}
	return sid
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
	UserID string         `json:"user_id"`
}

type lockedWriter struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

// captureLogs redirects the application logger while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	applog.SetOutput(w)
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}
