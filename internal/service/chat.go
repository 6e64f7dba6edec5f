package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_client.go -package=mocks minpaku-ai/internal/service LLMClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService minpaku-ai/internal/service ChatService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"minpaku-ai/internal/contextutil"
	"minpaku-ai/internal/language"
	"minpaku-ai/internal/llm"
	"minpaku-ai/internal/property"
	"minpaku-ai/internal/rag"
)

// LLMClient is an interface for the chat completion provider.
// Defined from the service layer's perspective (consumer-first).
type LLMClient interface {
	// ChatWithMessages sends a full message list and returns the reply.
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
	// StreamChatMessages streams the reply via callback, one delta per call.
	StreamChatMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams, callback func(chunk string) error) error
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	// Messages is the conversation so far; the last user message drives
	// retrieval and language detection.
	Messages []llm.Message
	// Language optionally pins the response language (ja/en/zh/ko).
	// When empty the language is detected from the latest user message.
	Language string
	// Detail optionally hints at answer length ("brief", "normal", "detailed").
	Detail string
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Reply    string
	Language string
}

// ChatService provides the guest-facing conversation flow.
type ChatService interface {
	// ProcessChat answers a chat request in one shot.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	// StreamChat answers a chat request, streaming the reply via callback.
	StreamChat(ctx context.Context, req ChatRequest, callback func(chunk string) error) error
}

// chatService implements ChatService: detect language, retrieve relevant
// knowledge, assemble the bounded context, call the completion provider.
type chatService struct {
	llmClient LLMClient
	engine    rag.Engine
	prop      property.Config
	logger    *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(llmClient LLMClient, engine rag.Engine, prop property.Config) ChatService {
	return &chatService{
		llmClient: llmClient,
		engine:    engine,
		prop:      prop,
		logger:    slog.Default(),
	}
}

// chatParams are the completion knobs observed to work well for support
// conversations.
var chatParams = llm.ChatParams{
	Temperature: 0.7,
	MaxTokens:   2000,
}

// ProcessChat processes a chat request.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	messages, lang, err := s.prepare(ctx, req)
	if err != nil {
		return ChatResponse{}, err
	}

	reply, err := s.llmClient.ChatWithMessages(ctx, messages, chatParams)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return ChatResponse{}, WrapError(err, "failed to get LLM response")
	}

	logger.InfoContext(ctx, "chat request processed", "language", lang, "reply_length", len(reply))
	return ChatResponse{Reply: reply, Language: lang}, nil
}

// StreamChat processes a chat request and streams the response.
func (s *chatService) StreamChat(ctx context.Context, req ChatRequest, callback func(chunk string) error) error {
	logger := contextutil.LoggerFromContext(ctx)

	messages, lang, err := s.prepare(ctx, req)
	if err != nil {
		return err
	}

	if err := s.llmClient.StreamChatMessages(ctx, messages, chatParams, callback); err != nil {
		logger.ErrorContext(ctx, "failed to stream LLM response", "error", err)
		return WrapError(err, "failed to stream LLM response")
	}

	logger.InfoContext(ctx, "streaming chat request processed", "language", lang)
	return nil
}

// prepare validates the request and builds the full message list with the
// retrieval-augmented multilingual system prompt up front.
func (s *chatService) prepare(ctx context.Context, req ChatRequest) ([]llm.Message, string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	latest := latestUserMessage(req.Messages)
	if latest == "" {
		logger.WarnContext(ctx, "chat request without a user message")
		return nil, "", &ValidationError{
			Field:   "messages",
			Message: "must contain at least one user message",
		}
	}

	lang := req.Language
	if !language.Valid(lang) {
		lang = language.Detect(latest)
	}

	// Retrieval failure must not break the conversation: degrade to the
	// base property context and answer ungrounded.
	count, budget := rag.RetrievalParams(req.Detail)
	results, err := s.engine.Search(ctx, latest, rag.DefaultThreshold, count)
	if err != nil {
		if !errors.Is(err, rag.ErrSearch) {
			return nil, "", err
		}
		logger.WarnContext(ctx, "retrieval failed, falling back to base context", "error", err)
		results = nil
	}

	enhanced := rag.AssembleContext(s.prop.BaseContext(), results, budget)
	system := multilingualContext(lang, enhanced)

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, m := range req.Messages {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		messages = append(messages, m)
	}

	logger.InfoContext(ctx, "chat context prepared",
		"language", lang,
		"detail", req.Detail,
		"results", len(results),
		"system_prompt_length", len(system),
	)
	return messages, lang, nil
}

// multilingualContext wraps the enhanced context with the language-specific
// answering rules.
func multilingualContext(lang string, enhanced string) string {
	cfg := language.Get(lang)

	var b strings.Builder
	b.WriteString(enhanced)
	b.WriteString("\n\n重要な言語指示:\n")
	b.WriteString(cfg.SystemPrompt)
	fmt.Fprintf(&b, "\n\n%sでの追加ガイドライン:\n", cfg.Name)
	fmt.Fprintf(&b, "- 必ず%sで回答してください\n", cfg.Name)
	b.WriteString("- 自然で会話的なトーンを使用してください\n")
	b.WriteString("- 役立つ場合は文化的コンテキストを含めてください\n")
	b.WriteString("- 日本語以外の方には、関連する日本の習慣も説明してください\n")
	b.WriteString("- 通貨: 価格はJPY（¥）で表示し、必要に応じてUSD/EUR/CNY換算も提供\n")
	b.WriteString("- 時間: 24時間制を使用し、関連する場合は日本標準時（JST）と記載\n")
	fmt.Fprintf(&b, "\n施設名（%s）: %s\n", cfg.Name, cfg.PropertyName)

	return b.String()
}

// latestUserMessage returns the content of the most recent user message.
func latestUserMessage(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}
