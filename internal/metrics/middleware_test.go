package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/rag/insights/{projectId}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	for _, id := range []string{"p1", "p2", "p3"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/rag/insights/"+id, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/rag/insights/{projectId}", "200"))
	if got < 3 {
		t.Errorf("expected >= 3 requests under the route pattern, got %f", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/analytics/calculate/{projectId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.WriteHeader(http.StatusInternalServerError) // ignored: first status wins
	})

	tests := []struct {
		method, path, pattern, status string
	}{
		{"POST", "/api/analytics/calculate/p9", "/api/analytics/calculate/{projectId}", "204"},
		{"GET", "/api/search", "/api/search", "400"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, http.NoBody))
			if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.pattern, tc.status)); v < 1 {
				t.Errorf("expected count for %s %s, got %f", tc.pattern, tc.status, v)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/p1", http.NoBody))
	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")); v < 1 {
		t.Errorf("expected unmatched 404 count, got %f", v)
	}
	if v := testutil.ToFloat64(httpInFlight); v != 0 {
		t.Errorf("in-flight gauge = %f after request", v)
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/usage", func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/usage", http.NoBody))
	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/usage", "200")); v < 1 {
		t.Errorf("handler writing nothing should count as 200, got %f", v)
	}
}

func TestRegisterAll_Idempotent(t *testing.T) {
	RegisterAll()
	RegisterAll()

	SearchRequestsTotal.WithLabelValues("all", "ok").Inc()
	AnswerFallbacksTotal.WithLabelValues("timeout").Inc()
	httpRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"labdex_search_requests_total", "labdex_answer_fallbacks_total", "labdex_http_requests_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("expected %s in /metrics output", name)
		}
	}
}
