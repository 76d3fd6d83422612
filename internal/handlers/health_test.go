package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		index      Pinger
		blobs      Pinger
		wantStatus int
		wantHealth string
		wantIssues []string
	}{
		{
			name:       "all healthy",
			index:      ok,
			blobs:      ok,
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
		},
		{
			name:       "index down",
			index:      down,
			blobs:      ok,
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantIssues: []string{"section_index_unavailable"},
		},
		{
			name:       "everything down",
			index:      down,
			blobs:      nil,
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantIssues: []string{"object_store_unavailable", "section_index_unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.index, tt.blobs)

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}

			var resp HealthResponse
			env := decodeEnvelope(t, w, &resp)
			wantEnvelope := "success"
			if tt.wantStatus != http.StatusOK {
				wantEnvelope = "error"
			}
			if env.Status != wantEnvelope {
				t.Errorf("ServeHTTP() envelope status = %v, want %v", env.Status, wantEnvelope)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("ServeHTTP() health = %v, want %v", resp.Status, tt.wantHealth)
			}
			if len(resp.Issues) != len(tt.wantIssues) {
				t.Fatalf("ServeHTTP() issues = %v, want %v", resp.Issues, tt.wantIssues)
			}
			for i := range tt.wantIssues {
				if resp.Issues[i] != tt.wantIssues[i] {
					t.Errorf("ServeHTTP() issues[%d] = %v, want %v", i, resp.Issues[i], tt.wantIssues[i])
				}
			}
		})
	}
}

func TestHealthHandler_Timeout(t *testing.T) {
	slow := pingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	handler := NewHealthHandler(slow, pingFunc(func(context.Context) error { return nil }))
	handler.healthCheckTimeout = 10 * time.Millisecond

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("ServeHTTP() status = %v, want %v", w.Code, http.StatusServiceUnavailable)
	}
}
