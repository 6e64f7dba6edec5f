package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	documents_mocks "minpaku-ai/internal/documents/mocks"
	"minpaku-ai/internal/rag"
	rag_mocks "minpaku-ai/internal/rag/mocks"
	"minpaku-ai/internal/storage"
)

func newDocumentHandler(t *testing.T) (*DocumentHandler, *documents_mocks.MockManager, *rag_mocks.MockEngine) {
	t.Helper()
	ctrl := gomock.NewController(t)

	manager := documents_mocks.NewMockManager(ctrl)
	engine := rag_mocks.NewMockEngine(ctrl)
	return NewDocumentHandler(manager, engine), manager, engine
}

func TestDocumentHandler_Get_Search(t *testing.T) {
	handler, _, engine := newDocumentHandler(t)

	engine.EXPECT().
		Search(gomock.Any(), "wifi", float32(adminSearchThreshold), adminSearchCount).
		Return([]rag.SearchResult{
			{ID: 1, Title: "Wi-Fi", Content: "pal2024", Category: "設備・アメニティ", Similarity: 0.8},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/documents?query=wifi", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Documents []rag.SearchResult `json:"documents"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Documents) != 1 || resp.Documents[0].Title != "Wi-Fi" {
		t.Errorf("documents = %+v", resp.Documents)
	}
}

func TestDocumentHandler_Get_SearchFailure(t *testing.T) {
	handler, _, engine := newDocumentHandler(t)

	engine.EXPECT().
		Search(gomock.Any(), "wifi", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("qdrant down"))

	req := httptest.NewRequest(http.MethodGet, "/api/documents?query=wifi", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestDocumentHandler_Get_ByCategory(t *testing.T) {
	handler, manager, _ := newDocumentHandler(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	manager.EXPECT().
		ListByCategory(gomock.Any(), "設備・アメニティ").
		Return([]storage.DocumentRecord{
			{ID: 2, Title: "Wi-Fi", Content: "pal2024", Category: "設備・アメニティ", CreatedAt: now, UpdatedAt: now},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/documents?category="+url.QueryEscape("設備・アメニティ"), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Documents []DocumentView `json:"documents"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Documents) != 1 || resp.Documents[0].ID != 2 {
		t.Errorf("documents = %+v", resp.Documents)
	}
	if resp.Documents[0].CreatedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("created_at = %q", resp.Documents[0].CreatedAt)
	}
}

func TestDocumentHandler_Get_MissingParams(t *testing.T) {
	handler, _, _ := newDocumentHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDocumentHandler_Store(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockSetup  func(*documents_mocks.MockManager)
		wantStatus int
	}{
		{
			name: "successful store",
			body: DocumentPayload{Title: "Wi-Fi", Content: "pal2024", Category: "設備・アメニティ"},
			mockSetup: func(m *documents_mocks.MockManager) {
				m.EXPECT().
					Store(gomock.Any(), "Wi-Fi", "pal2024", "設備・アメニティ").
					Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing fields",
			body:       DocumentPayload{Title: "Wi-Fi"},
			mockSetup:  func(m *documents_mocks.MockManager) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       "{not json",
			mockSetup:  func(m *documents_mocks.MockManager) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			body: DocumentPayload{Title: "t", Content: "c", Category: "設備・アメニティ"},
			mockSetup: func(m *documents_mocks.MockManager) {
				m.EXPECT().
					Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db locked"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, manager, _ := newDocumentHandler(t)
			tt.mockSetup(manager)

			req := httptest.NewRequest(http.MethodPost, "/api/documents", encodeBody(t, tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDocumentHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockSetup  func(*documents_mocks.MockManager)
		wantStatus int
	}{
		{
			name: "successful update",
			body: DocumentPayload{ID: 4, Title: "t", Content: "c", Category: "ルール・マナー"},
			mockSetup: func(m *documents_mocks.MockManager) {
				m.EXPECT().
					Update(gomock.Any(), int64(4), "t", "c", "ルール・マナー").
					Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing id",
			body:       DocumentPayload{Title: "t", Content: "c", Category: "ルール・マナー"},
			mockSetup:  func(m *documents_mocks.MockManager) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "update failure",
			body: DocumentPayload{ID: 4, Title: "t", Content: "c", Category: "ルール・マナー"},
			mockSetup: func(m *documents_mocks.MockManager) {
				m.EXPECT().
					Update(gomock.Any(), int64(4), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db locked"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, manager, _ := newDocumentHandler(t)
			tt.mockSetup(manager)

			req := httptest.NewRequest(http.MethodPut, "/api/documents", encodeBody(t, tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDocumentHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		mockSetup  func(*documents_mocks.MockManager)
		wantStatus int
	}{
		{
			name:   "successful delete",
			target: "/api/documents?id=5",
			mockSetup: func(m *documents_mocks.MockManager) {
				m.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing id",
			target:     "/api/documents",
			mockSetup:  func(m *documents_mocks.MockManager) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-numeric id",
			target:     "/api/documents?id=abc",
			mockSetup:  func(m *documents_mocks.MockManager) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "delete failure",
			target: "/api/documents?id=5",
			mockSetup: func(m *documents_mocks.MockManager) {
				m.EXPECT().Delete(gomock.Any(), int64(5)).Return(errors.New("db locked"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, manager, _ := newDocumentHandler(t)
			tt.mockSetup(manager)

			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDocumentHandler_Preview(t *testing.T) {
	handler, manager, _ := newDocumentHandler(t)

	manager.EXPECT().
		Get(gomock.Any(), int64(3)).
		Return(&storage.DocumentRecord{
			ID:        3,
			Title:     "ハウスルール",
			Content:   "# ルール\n\n- 静かにお過ごしください",
			Category:  "ルール・マナー",
			UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}, nil)

	w := httptest.NewRecorder()
	handler.Preview(w, previewRequest(t, "3"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q", got)
	}

	out := w.Body.String()
	// Markdown rendered to HTML, not echoed raw.
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<li>静かにお過ごしください</li>") {
		t.Errorf("preview output not rendered: %q", out)
	}
}

func TestDocumentHandler_Preview_NotFound(t *testing.T) {
	handler, manager, _ := newDocumentHandler(t)

	manager.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, storage.ErrNotFound)

	w := httptest.NewRecorder()
	handler.Preview(w, previewRequest(t, "99"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDocumentHandler_Preview_InvalidID(t *testing.T) {
	handler, _, _ := newDocumentHandler(t)

	w := httptest.NewRecorder()
	handler.Preview(w, previewRequest(t, "abc"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// previewRequest builds a request carrying a chi URL parameter.
func previewRequest(t *testing.T, id string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/preview", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func encodeBody(t *testing.T, body any) *bytes.Buffer {
	t.Helper()
	if s, ok := body.(string); ok {
		return bytes.NewBufferString(s)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(raw)
}

