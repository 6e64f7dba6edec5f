package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"minpaku-ai/internal/llm"
	"minpaku-ai/internal/service"
	"minpaku-ai/internal/service/mocks"
)

func chatBody(t *testing.T, body any) *bytes.Buffer {
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

func TestNewChatHandler(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockChatService := mocks.NewMockChatService(ctrl)
	handler := NewChatHandler(mockChatService)

	if handler == nil {
		t.Fatal("NewChatHandler() returned nil")
	}
	if handler.chatService != mockChatService {
		t.Error("NewChatHandler() chatService not set correctly")
	}
}

func TestChatHandler_ServeHTTP(t *testing.T) {
	userMessages := []llm.Message{{Role: "user", Content: "チェックインは何時ですか"}}

	tests := []struct {
		name          string
		method        string
		body          any
		mockSetup     func(*mocks.MockChatService)
		wantStatus    int
		checkResponse func(*httptest.ResponseRecorder) bool
	}{
		{
			name:   "successful POST request",
			method: http.MethodPost,
			body:   ChatRequest{Messages: userMessages},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), service.ChatRequest{Messages: userMessages}).
					Return(service.ChatResponse{Reply: "15時からです。", Language: "ja"}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(w *httptest.ResponseRecorder) bool {
				var resp ChatResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					return false
				}
				return resp.Reply == "15時からです。" && resp.Language == "ja"
			},
		},
		{
			name:   "language and detail forwarded",
			method: http.MethodPost,
			body:   ChatRequest{Messages: userMessages, Language: "en", Detail: "brief"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), service.ChatRequest{Messages: userMessages, Language: "en", Detail: "brief"}).
					Return(service.ChatResponse{Reply: "3pm.", Language: "en"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "method not allowed",
			method: http.MethodGet,
			mockSetup: func(m *mocks.MockChatService) {
				// No calls expected
			},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "invalid JSON body",
			method: http.MethodPost,
			body:   "invalid json",
			mockSetup: func(m *mocks.MockChatService) {
				// No calls expected
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   ChatRequest{},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, &service.ValidationError{
						Field:   "messages",
						Message: "must contain at least one user message",
					})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "service error",
			method: http.MethodPost,
			body:   ChatRequest{Messages: userMessages},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, errors.New("service error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "ErrExternalService",
			method: http.MethodPost,
			body:   ChatRequest{Messages: userMessages},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					ProcessChat(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, service.ErrExternalService)
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockChatService := mocks.NewMockChatService(ctrl)
			tt.mockSetup(mockChatService)

			handler := NewChatHandler(mockChatService)

			var body *bytes.Buffer
			if tt.body != nil {
				body = chatBody(t, tt.body)
			} else {
				body = &bytes.Buffer{}
			}

			req := httptest.NewRequest(tt.method, "/api/chat", body)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.checkResponse != nil && !tt.checkResponse(w) {
				t.Error("ServeHTTP() response validation failed")
			}
		})
	}
}

func TestChatHandler_Streaming(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockChatService := mocks.NewMockChatService(ctrl)

	mockChatService.EXPECT().
		StreamChat(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req service.ChatRequest, callback func(chunk string) error) error {
			for _, chunk := range []string{"15時", "からです。"} {
				if err := callback(chunk); err != nil {
					return err
				}
			}
			return nil
		})

	handler := NewChatHandler(mockChatService)

	body := chatBody(t, ChatRequest{Messages: []llm.Message{{Role: "user", Content: "チェックインは？"}}})
	req := httptest.NewRequest(http.MethodPost, "/api/chat?stream=true", body)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}

	out := w.Body.String()
	for _, fragment := range []string{
		`data: {"content":"15時"}`,
		`data: {"content":"からです。"}`,
		"data: [DONE]",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("stream output missing %q in %q", fragment, out)
		}
	}
}

func TestChatHandler_Streaming_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockChatService := mocks.NewMockChatService(ctrl)

	mockChatService.EXPECT().
		StreamChat(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("provider down"))

	handler := NewChatHandler(mockChatService)

	body := chatBody(t, ChatRequest{Messages: []llm.Message{{Role: "user", Content: "hi"}}})
	req := httptest.NewRequest(http.MethodPost, "/api/chat?stream=true", body)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	out := w.Body.String()
	if !strings.Contains(out, `"error"`) {
		t.Errorf("stream output should carry an error frame, got %q", out)
	}
	if strings.Contains(out, "data: [DONE]") {
		t.Error("stream should not signal DONE after an error")
	}
}
