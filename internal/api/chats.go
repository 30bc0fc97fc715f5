package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/scribe-chat/scribe/internal/chat"
)

// chatJSON is the wire shape of a chat.
type chatJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// messageJSON is the wire shape of a message with its parts.
type messageJSON struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chatId"`
	Role      chat.Role  `json:"role"`
	Parts     chat.Parts `json:"parts"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toChatJSON(c *chat.Chat) chatJSON {
	return chatJSON{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toMessageJSON(m *chat.Message) messageJSON {
	return messageJSON{ID: m.ID, ChatID: m.ChatID, Role: m.Role, Parts: m.Parts, CreatedAt: m.CreatedAt}
}

// createChatRequest is the body of POST /api/v1/chats. The id is
// client-generated so the UI can navigate before the round trip completes.
type createChatRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (h *chatHandler) createChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body", h.logger)
		return
	}
	if req.ID == "" {
		WriteError(w, http.StatusBadRequest, "chat_id_required", "id is required", h.logger)
		return
	}

	created, err := h.store.CreateChat(r.Context(), req.ID, req.Title)
	if err != nil {
		if errors.Is(err, chat.ErrDuplicateID) {
			WriteError(w, http.StatusConflict, "chat_exists", "chat id already exists", h.logger)
			return
		}
		WriteError(w, http.StatusInternalServerError, "store_error", "failed to create chat", h.logger)
		return
	}

	writeData(w, http.StatusCreated, toChatJSON(created))
}

func (h *chatHandler) listChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.store.Chats(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "store_error", "failed to list chats", h.logger)
		return
	}

	out := make([]chatJSON, 0, len(chats))
	for _, c := range chats {
		out = append(out, toChatJSON(c))
	}
	writeData(w, http.StatusOK, out)
}

func (h *chatHandler) getChat(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Chat(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "chat_not_found", "chat not found", h.logger)
			return
		}
		WriteError(w, http.StatusInternalServerError, "store_error", "failed to load chat", h.logger)
		return
	}

	writeData(w, http.StatusOK, toChatJSON(c))
}

func (h *chatHandler) getChatMessages(w http.ResponseWriter, r *http.Request) {
	chatID := r.PathValue("id")

	if _, err := h.store.Chat(r.Context(), chatID); err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "chat_not_found", "chat not found", h.logger)
			return
		}
		WriteError(w, http.StatusInternalServerError, "store_error", "failed to load chat", h.logger)
		return
	}

	messages, err := h.store.Messages(r.Context(), chatID)
	if err != nil {
		code, status := "store_error", http.StatusInternalServerError
		if errors.Is(err, chat.ErrUnsupportedPartType) || errors.Is(err, chat.ErrDataIntegrity) {
			code = "data_integrity"
		}
		WriteError(w, status, code, "failed to load messages", h.logger)
		return
	}

	out := make([]messageJSON, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageJSON(m))
	}
	writeData(w, http.StatusOK, out)
}

func (h *chatHandler) deleteChat(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteChat(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, http.StatusInternalServerError, "store_error", "failed to delete chat", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteMessage removes the target message and every later message in the
// same chat. Deleting an absent message is a no-op, not an error.
func (h *chatHandler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMessage(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, http.StatusInternalServerError, "store_error", "failed to delete message", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
