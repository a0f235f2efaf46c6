package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func setupRouter(db Pinger) *gin.Engine {
	h := NewHealthHandler(db)
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	r.GET("/readyz", h.Ready)
	return r
}

func TestHealth_ResponseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method         string
		expectedStatus int
		expectBody     bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodHead, http.StatusOK, false},
		{http.MethodOptions, http.StatusNoContent, false},
	}

	router := setupRouter(nil)

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if w.Header().Get("Cache-Control") != "no-store" {
				t.Errorf("expected Cache-Control 'no-store', got %q", w.Header().Get("Cache-Control"))
			}
			if !tt.expectBody && w.Body.Len() != 0 {
				t.Errorf("expected empty body, got %d bytes", w.Body.Len())
			}
			if tt.expectBody {
				var response map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if response["status"] != "ok" {
					t.Errorf("expected status 'ok', got %q", response["status"])
				}
			}
		})
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
		expectedState  string
	}{
		{"no database configured", nil, http.StatusOK, "ready"},
		{"ping ok", pingerFunc(func(context.Context) error { return nil }), http.StatusOK, "ready"},
		{"ping fails", pingerFunc(func(context.Context) error { return errors.New("closed") }), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			setupRouter(tt.db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			var response map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response["status"] != tt.expectedState {
				t.Errorf("expected status %q, got %q", tt.expectedState, response["status"])
			}
		})
	}
}
