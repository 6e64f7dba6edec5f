package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubChecker struct {
	exists bool
	err    error
}

func (s stubChecker) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return s.exists, s.err
}

type stubPinger struct {
	err error
}

func (s stubPinger) PingContext(ctx context.Context) error {
	return s.err
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		checker    stubChecker
		db         stubPinger
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "all healthy",
			checker:    stubChecker{exists: true},
			db:         stubPinger{},
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: "ok", Database: "ok", Vector: "ok", Collection: "documents"},
		},
		{
			name:       "database down",
			checker:    stubChecker{exists: true},
			db:         stubPinger{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "degraded", Database: "unavailable", Vector: "ok", Collection: "documents"},
		},
		{
			name:       "vector store down",
			checker:    stubChecker{err: errors.New("grpc unavailable")},
			db:         stubPinger{},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "degraded", Database: "ok", Vector: "unavailable", Collection: "documents"},
		},
		{
			name:       "collection missing",
			checker:    stubChecker{exists: false},
			db:         stubPinger{},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: "degraded", Database: "ok", Vector: "missing collection", Collection: "documents"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.checker, tt.db, "documents")

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp != tt.wantBody {
				t.Errorf("response = %+v, want %+v", resp, tt.wantBody)
			}
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(stubChecker{exists: true}, stubPinger{}, "documents")

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
