package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/scribe-chat/scribe/internal/chat"
	"github.com/scribe-chat/scribe/internal/llm"
)

// maxRequestBody limits chat request bodies to 1MB.
const maxRequestBody = 1 << 20

// chatHandler serves the chat CRUD routes and the SSE streaming endpoint.
type chatHandler struct {
	store     ChatStore
	generator Generator
	logger    *slog.Logger
}

// SSE event types for chat streaming.
const (
	EventChunk = "chunk" // Partial response text
	EventDone  = "done"  // Stream completed successfully
	EventError = "error" // Error occurred during streaming
)

// ChunkPayload is the SSE data payload for streaming text chunks.
type ChunkPayload struct {
	Text string `json:"text"`
}

// DonePayload is the SSE data payload when streaming completes successfully.
// Parts is the assistant message exactly as persisted.
type DonePayload struct {
	ChatID    string     `json:"chatId"`
	MessageID string     `json:"messageId"`
	Parts     chat.Parts `json:"parts"`
}

// ErrorPayload is the SSE data payload when an error occurs.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// streamRequest is the body of POST /api/v1/chat.
type streamRequest struct {
	ChatID  string `json:"chatId"`
	Message struct {
		ID    string     `json:"id"`
		Role  chat.Role  `json:"role"`
		Parts chat.Parts `json:"parts"`
	} `json:"message"`
}

// stream handles one full chat turn over SSE: persist the user message,
// stream the model response as chunk events, persist the assistant message,
// then emit a done event with the final part list.
func (h *chatHandler) stream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var req streamRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		code := "invalid_request"
		if errors.Is(err, chat.ErrUnsupportedPartType) {
			code = "unsupported_part_type"
		}
		_ = writeEvent(w, flusher, EventError, ErrorPayload{Code: code, Message: "invalid request body"})
		return
	}

	if req.ChatID == "" {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{Code: "chat_id_required", Message: "chatId is required"})
		return
	}
	if req.Message.ID == "" {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{Code: "message_id_required", Message: "message.id is required"})
		return
	}
	if len(req.Message.Parts) == 0 {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{Code: "parts_required", Message: "message.parts must not be empty"})
		return
	}
	if req.Message.Role == "" {
		req.Message.Role = chat.RoleUser
	}
	if req.Message.Role != chat.RoleUser {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{Code: "invalid_role", Message: "inbound message role must be user"})
		return
	}
	if h.generator == nil {
		_ = writeEvent(w, flusher, EventError, ErrorPayload{Code: "generator_not_configured", Message: "model generator not configured"})
		return
	}

	ctx := r.Context()
	userMsg := &chat.Message{
		ID:     req.Message.ID,
		ChatID: req.ChatID,
		Role:   chat.RoleUser,
		Parts:  req.Message.Parts,
	}
	userText := userMsg.Text()

	// Ensure the chat exists. A duplicate-key failure means a concurrent
	// request created it first, which is just as good.
	created := false
	if _, err := h.store.Chat(ctx, req.ChatID); err != nil {
		if !errors.Is(err, chat.ErrNotFound) {
			h.streamStoreError(w, flusher, err)
			return
		}
		if _, err := h.store.CreateChat(ctx, req.ChatID, truncateForTitle(userText)); err != nil {
			if !errors.Is(err, chat.ErrDuplicateID) {
				h.streamStoreError(w, flusher, err)
				return
			}
		} else {
			created = true
		}
	}

	// Persist the user message before the model call so a crash
	// mid-generation does not lose the user's input.
	if err := h.store.UpsertMessage(ctx, userMsg); err != nil {
		h.streamStoreError(w, flusher, err)
		return
	}

	history, err := h.store.Messages(ctx, req.ChatID)
	if err != nil {
		h.streamStoreError(w, flusher, err)
		return
	}

	h.logger.Debug("SSE stream started", "chat_id", req.ChatID, "history", len(history))

	parts, err := h.generator.Generate(ctx, history, func(ctx context.Context, text string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return writeEvent(w, flusher, EventChunk, ChunkPayload{Text: text})
	})
	if err != nil {
		if ctx.Err() != nil {
			h.logger.Info("client disconnected", "chat_id", req.ChatID)
			return
		}
		h.logger.Error("generation failed", "chat_id", req.ChatID, "error", err)
		_ = writeEvent(w, flusher, EventError, ErrorPayload{Code: "generation_failed", Message: "model call failed"})
		return
	}

	assistantMsg := &chat.Message{
		ID:     uuid.New().String(),
		ChatID: req.ChatID,
		Role:   chat.RoleAssistant,
		Parts:  parts,
	}

	// The caller already has the full response. If this write fails the
	// turn is lost on reload, but the delivered stream is not retracted.
	if err := h.store.UpsertMessage(ctx, assistantMsg); err != nil {
		h.logger.Error("assistant message not persisted",
			"chat_id", req.ChatID, "message_id", assistantMsg.ID, "error", err)
	}

	_ = writeEvent(w, flusher, EventDone, DonePayload{
		ChatID:    req.ChatID,
		MessageID: assistantMsg.ID,
		Parts:     assistantMsg.Parts,
	})

	if created {
		h.upgradeTitle(ctx, req.ChatID, userText)
	}

	h.logger.Debug("SSE stream completed", "chat_id", req.ChatID, "message_id", assistantMsg.ID)
}

// streamStoreError maps store errors to SSE error events.
func (h *chatHandler) streamStoreError(w io.Writer, f http.Flusher, err error) {
	code := "store_error"

	switch {
	case errors.Is(err, chat.ErrNotFound):
		code = "chat_not_found"
	case errors.Is(err, chat.ErrUnsupportedPartType):
		code = "unsupported_part_type"
	case errors.Is(err, chat.ErrMissingField):
		code = "missing_field"
	case errors.Is(err, chat.ErrInvalidRole):
		code = "invalid_role"
	case errors.Is(err, chat.ErrDataIntegrity):
		code = "data_integrity"
	}

	h.logger.Error("chat stream aborted", "code", code, "error", err)
	_ = writeEvent(w, f, EventError, ErrorPayload{Code: code, Message: err.Error()})
}

// upgradeTitle replaces the truncation-based placeholder title with a
// model-generated one. Best effort.
func (h *chatHandler) upgradeTitle(ctx context.Context, chatID, userText string) {
	title := h.generator.Title(ctx, userText)
	if title == "" {
		return
	}
	if err := h.store.SetChatTitle(ctx, chatID, title); err != nil {
		h.logger.Debug("title update failed", "chat_id", chatID, "error", err)
	}
}

// truncateForTitle derives a placeholder chat title from the first user
// message. Collapses to the first line and caps the length at the same
// bound the model-generated titles use.
func truncateForTitle(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	runes := []rune(text)
	if len(runes) > llm.TitleMaxRunes {
		return string(runes[:llm.TitleMaxRunes-3]) + "..."
	}
	return text
}

// writeEvent writes a single SSE event with JSON-encoded data.
// SSE format: "event: <type>\ndata: <json>\n\n"
func writeEvent[T any](w io.Writer, flusher http.Flusher, event string, data T) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	flusher.Flush()
	return nil
}
