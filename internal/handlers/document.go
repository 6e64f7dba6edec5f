package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"minpaku-ai/internal/contextutil"
	"minpaku-ai/internal/documents"
	"minpaku-ai/internal/rag"
	"minpaku-ai/internal/storage"
)

// adminSearchThreshold is the floor for the admin search box, where the
// query usually echoes stored wording and precision matters more than in
// conversational retrieval.
const adminSearchThreshold = 0.5

const adminSearchCount = 10

// DocumentHandler handles the admin documents API: listing, similarity
// search, storage, update, deletion, and a rendered content preview.
type DocumentHandler struct {
	manager documents.Manager
	engine  rag.Engine
	md      goldmark.Markdown
	tmpl    *template.Template
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(manager documents.Manager, engine rag.Engine) *DocumentHandler {
	tmpl := template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; line-height: 1.7; }
    .meta { color: #666; font-size: 0.9rem; margin-bottom: 1.5rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">カテゴリ: {{.Category}} / 更新: {{.UpdatedAt}}</div>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &DocumentHandler{
		manager: manager,
		engine:  engine,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(ghhtml.WithHardWraps()),
		),
		tmpl: tmpl,
	}
}

// DocumentPayload is the request body for storing or updating a document.
type DocumentPayload struct {
	ID       int64  `json:"id,omitempty"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// DocumentsResponse wraps document lists and search results.
type DocumentsResponse struct {
	Documents any `json:"documents"`
}

// MessageResponse is the generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ServeHTTP dispatches /api/documents by method.
func (h *DocumentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handleStore(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleGet lists documents by category, or runs a similarity search when a
// query parameter is present.
func (h *DocumentHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	query := r.URL.Query().Get("query")
	cat := r.URL.Query().Get("category")

	switch {
	case query != "":
		results, err := h.engine.Search(ctx, query, adminSearchThreshold, adminSearchCount)
		if err != nil {
			logger.ErrorContext(ctx, "admin search failed", "error", err)
			writeError(w, http.StatusBadGateway, "ドキュメントの検索に失敗しました。")
			return
		}
		writeJSON(w, http.StatusOK, DocumentsResponse{Documents: results})

	case cat != "":
		docs, err := h.manager.ListByCategory(ctx, cat)
		if err != nil {
			logger.ErrorContext(ctx, "failed to list documents", "category", cat, "error", err)
			writeError(w, http.StatusInternalServerError, "ドキュメントの取得に失敗しました。")
			return
		}
		writeJSON(w, http.StatusOK, DocumentsResponse{Documents: toDocumentViews(docs)})

	default:
		writeError(w, http.StatusBadRequest, "カテゴリまたは検索クエリが必要です。")
	}
}

// handleStore stores a new document with chunking.
func (h *DocumentHandler) handleStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var payload DocumentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Title == "" || payload.Content == "" || payload.Category == "" {
		writeError(w, http.StatusBadRequest, "タイトル、内容、カテゴリは必須です。")
		return
	}

	if err := h.manager.Store(ctx, payload.Title, payload.Content, payload.Category); err != nil {
		logger.ErrorContext(ctx, "failed to store document", "title", payload.Title, "error", err)
		writeError(w, http.StatusInternalServerError, "ドキュメントの保存に失敗しました。")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "ドキュメントが正常に保存されました。", Success: true})
}

// handleUpdate replaces a document wholesale so its embedding is recomputed.
func (h *DocumentHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var payload DocumentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.ID <= 0 {
		writeError(w, http.StatusBadRequest, "ドキュメントIDが必要です。")
		return
	}
	if payload.Title == "" || payload.Content == "" || payload.Category == "" {
		writeError(w, http.StatusBadRequest, "タイトル、内容、カテゴリは必須です。")
		return
	}

	if err := h.manager.Update(ctx, payload.ID, payload.Title, payload.Content, payload.Category); err != nil {
		logger.ErrorContext(ctx, "failed to update document", "id", payload.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "ドキュメントの更新に失敗しました。")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "ドキュメントが正常に更新されました。", Success: true})
}

// handleDelete removes a document by id. A non-existent id still succeeds.
func (h *DocumentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "ドキュメントIDが必要です。")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ドキュメントIDが不正です。")
		return
	}

	if err := h.manager.Delete(ctx, id); err != nil {
		logger.ErrorContext(ctx, "failed to delete document", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "ドキュメントの削除に失敗しました。")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "ドキュメントが正常に削除されました。", Success: true})
}

// Preview renders a stored document's markdown content as an HTML page for
// the admin screen. Mounted at GET /api/documents/{id}/preview.
func (h *DocumentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ドキュメントIDが不正です。")
		return
	}

	doc, err := h.manager.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ドキュメントが見つかりません。")
			return
		}
		logger.ErrorContext(ctx, "failed to load document for preview", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "ドキュメントの取得に失敗しました。")
		return
	}

	var rendered bytes.Buffer
	if err := h.md.Convert([]byte(doc.Content), &rendered); err != nil {
		logger.ErrorContext(ctx, "failed to render document markdown", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "ドキュメントの表示に失敗しました。")
		return
	}

	data := struct {
		Title     string
		Category  string
		UpdatedAt string
		Content   template.HTML
	}{
		Title:     doc.Title,
		Category:  doc.Category,
		UpdatedAt: doc.UpdatedAt.Format("2006-01-02 15:04"),
		Content:   template.HTML(rendered.String()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		logger.ErrorContext(ctx, "failed to render preview template", "id", id, "error", err)
	}
}

// DocumentView is the JSON shape of a stored document.
type DocumentView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toDocumentViews(docs []storage.DocumentRecord) []DocumentView {
	views := make([]DocumentView, len(docs))
	for i, d := range docs {
		views[i] = DocumentView{
			ID:        d.ID,
			Title:     d.Title,
			Content:   d.Content,
			Category:  d.Category,
			CreatedAt: d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			UpdatedAt: d.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return views
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
