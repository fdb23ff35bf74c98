package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"abc", 5, "abc"},
		{"abcdef", 3, "abc"},
		{"Привет", 3, "П"},
		{"Привет", 4, "Пр"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateUTF8(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateUTF8(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestAssetServed(t *testing.T) {
	before := testutil.ToFloat64(assetsServed.WithLabelValues("bundle"))
	AssetServed("bundle")
	AssetServed("bundle")
	if got := testutil.ToFloat64(assetsServed.WithLabelValues("bundle")); got != before+2 {
		t.Errorf("bundle count = %v, want %v", got, before+2)
	}
}

func TestHTTPMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMetrics)
	r.Get("/static/{file}", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	reg := prometheus.NewRegistry()
	reg.MustRegister(reqDuration)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "path" {
					if strings.Contains(lp.GetValue(), "style.css") {
						t.Errorf("raw path leaked into label: %q", lp.GetValue())
					}
					if lp.GetValue() == "/static/{file}" {
						found = true
					}
				}
			}
		}
	}
	if !found {
		t.Error("route pattern label not recorded")
	}
}
