package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestExtractHandlerName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/items", "items"},
		{"/api/v1/items/4f1c", "item"},
		{"/api/v1/simulation/advance", "simulation_advance"},
		{"/api/v1/simulation/state", "simulation_state"},
		{"/api/v1/simulation/preview", "simulation_preview"},
		{"/metrics", "metrics"},
		{"/health", "health"},
		{"/favicon.ico", "favicon.ico"},
		{"/", "unknown"},
	}

	for _, tt := range tests {
		if got := extractHandlerName(tt.path); got != tt.want {
			t.Fatalf("extractHandlerName(%q) = %q, expected %q", tt.path, got, tt.want)
		}
	}
}

func TestGetLockType(t *testing.T) {
	tests := map[string]string{
		"simulation:advance": "simulation",
		"inventory:rebuild":  "inventory",
		"something":          "other",
		"":                   "unknown",
	}

	for key, want := range tests {
		if got := getLockType(key); got != want {
			t.Fatalf("getLockType(%q) = %q, expected %q", key, got, want)
		}
	}
}

func TestHTTPMetricsMiddlewareCapturesStatus(t *testing.T) {
	var captured int
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		if rw, ok := w.(*responseWriter); ok {
			captured = rw.statusCode
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusTeapot || captured != http.StatusTeapot {
		t.Fatalf("expected status %d recorded, got %d/%d", http.StatusTeapot, rec.Code, captured)
	}
}

func TestRouteLabelUsesChiPattern(t *testing.T) {
	var label string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			label = routeLabel(req)
		})
	})
	r.Get("/api/v1/items/{id}", func(w http.ResponseWriter, req *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/items/abc", nil))
	if label != "/api/v1/items/{id}" {
		t.Fatalf("expected route pattern label, got %q", label)
	}

	plain := httptest.NewRequest(http.MethodGet, "/health", nil)
	if got := routeLabel(plain); got != "health" {
		t.Fatalf("expected path fallback, got %q", got)
	}
}
