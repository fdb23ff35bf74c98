package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/contactform/config"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T, cfg config.SiteConfig) http.Handler {
	t.Helper()
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

func testConfig(t *testing.T) config.SiteConfig {
	t.Helper()
	dir := t.TempDir()
	wasm := filepath.Join(dir, "contact.wasm")
	shim := filepath.Join(dir, "wasm_exec.js")
	if err := os.WriteFile(wasm, []byte("\x00asm\x01\x00\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(shim, []byte("// go runtime shim"), 0o644); err != nil {
		t.Fatal(err)
	}
	return config.SiteConfig{
		Title:        "Обратная связь",
		WasmPath:     wasm,
		WasmExecPath: shim,
		SubmitDelay:  2 * time.Second,
		GraceDelay:   100 * time.Millisecond,
		AssetMaxAge:  3600,
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndex_RendersFormHooks(t *testing.T) {
	rec := get(t, newTestServer(t, testConfig(t)), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()

	want := []string{
		`<title>Обратная связь</title>`,
		`id="contactForm"`,
		`data-submit-delay="2000"`,
		`data-grace-delay="100"`,
		`id="successMessage"`,
		`class="submit-btn"`,
		`class="btn-text"`,
		`class="btn-loader"`,
		`class="menu-hamburger"`,
		`class="menu-list"`,
		`src="/static/wasm_exec.js"`,
	}
	for _, id := range []string{"name", "email", "phone", "message", "agreement"} {
		want = append(want, `id="`+id+`"`, `id="`+id+`Error"`)
	}
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("page missing %s", w)
		}
	}
}

func TestIndex_EscapesTitle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Title = `<script>x</script>`
	body := get(t, newTestServer(t, cfg), "/").Body.String()
	if strings.Contains(body, "<script>x</script>") {
		t.Error("title was not escaped")
	}
}

func TestBundle(t *testing.T) {
	rec := get(t, newTestServer(t, testConfig(t)), "/contact.wasm")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/wasm" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if !strings.HasPrefix(rec.Body.String(), "\x00asm") {
		t.Error("body is not the bundle")
	}
}

func TestBundle_MissingIs503(t *testing.T) {
	cfg := testConfig(t)
	cfg.WasmPath = filepath.Join(t.TempDir(), "nope.wasm")
	if rec := get(t, newTestServer(t, cfg), "/contact.wasm"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestStatic(t *testing.T) {
	h := newTestServer(t, testConfig(t))

	tests := []struct {
		path     string
		wantCode int
		wantType string
	}{
		{"/static/style.css", http.StatusOK, "text/css"},
		{"/static/boot.js", http.StatusOK, "javascript"},
		{"/static/wasm_exec.js", http.StatusOK, "text/javascript"},
		{"/static/missing.css", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := get(t, h, tt.path)
		if rec.Code != tt.wantCode {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.wantCode)
			continue
		}
		if tt.wantType != "" && !strings.Contains(rec.Header().Get("Content-Type"), tt.wantType) {
			t.Errorf("%s: Content-Type = %q", tt.path, rec.Header().Get("Content-Type"))
		}
	}
}

func TestNoRouteAcceptsFormData(t *testing.T) {
	h := newTestServer(t, testConfig(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=x")))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST / status = %d, want 405", rec.Code)
	}
}
