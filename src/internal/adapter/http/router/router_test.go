package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type registrarStub struct {
	register func(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func (s registrarStub) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	s.register(mux, authMiddleware)
}

func TestNewServesDocsAndMetrics(t *testing.T) {
	handler := New(nil)

	for _, path := range []string{"/swagger/", "/swagger/openapi.json", "/metrics"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
	}
}

func TestOpenAPIDocumentIsValidJSON(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(openAPI), &doc); err != nil {
		t.Fatalf("expected valid json: %v", err)
	}
	paths := doc["paths"].(map[string]any)
	for _, path := range []string{"/api/transfers", "/api/transfers/{id}", "/api/accounts", "/api/accounts/{id}", "/api/accounts/{id}/deposits"} {
		if _, ok := paths[path]; !ok {
			t.Fatalf("expected %s documented", path)
		}
	}
}

func TestNewPassesAuthMiddlewareAndSetsRequestID(t *testing.T) {
	authCalled := false
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCalled = true
			next.ServeHTTP(w, r)
		})
	}
	controller := registrarStub{register: func(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
		mux.Handle("GET /api/ping", authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))
	}}

	rr := httptest.NewRecorder()
	New(auth, controller).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if !authCalled {
		t.Fatal("expected auth middleware to wrap controller routes")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID response header")
	}
}
