package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shoplens/shoplens/pkg/module"
)

func echoPathMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /analytics", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
	return mux
}

func TestModuleStripsPrefix(t *testing.T) {
	m := module.New("/api", echoPathMux())

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/analytics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != "/analytics" {
		t.Errorf("inner path: got %q, want /analytics", body)
	}
}

func TestModuleMiddlewareApplies(t *testing.T) {
	m := module.New("/api", echoPathMux())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Tagged", "yes")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/analytics", nil))

	if rec.Header().Get("X-Tagged") != "yes" {
		t.Error("module middleware did not run")
	}
}

func TestNewRejectsInvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for prefix %q", prefix)
				}
			}()
			module.New(prefix, http.NewServeMux())
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPathMux()))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"module route", "/api/analytics", http.StatusOK, "/analytics"},
		{"trailing slash normalized", "/api/analytics/", http.StatusOK, "/analytics"},
		{"native fallback", "/healthz", http.StatusOK, "ok"},
		{"unknown path", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body: got %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}
