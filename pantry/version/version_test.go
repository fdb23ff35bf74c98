package version

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMount(t *testing.T) {
	r := chi.NewRouter()
	Mount(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var info Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != Version || info.GoVersion != runtime.Version() {
		t.Errorf("info = %+v", info)
	}
	if info.Commit == "" || info.BuildTime == "" {
		t.Errorf("commit/build_time should never be empty: %+v", info)
	}
}

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "dev"
	if got := String(); got != "dev" {
		t.Errorf("String() = %q", got)
	}
	Version, Commit, BuildTime = "1.2.3", "abc123", "2026-01-01T00:00:00Z"
	t.Cleanup(func() { Commit, BuildTime = "", "" })
	if got := String(); got != "1.2.3 (abc123, built 2026-01-01T00:00:00Z)" {
		t.Errorf("String() = %q", got)
	}
}
