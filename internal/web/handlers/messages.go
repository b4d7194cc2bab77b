package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dkadlec/face-lounge/internal/store"
)

// MessagesHandler handles chat message endpoints.
type MessagesHandler struct {
	messages store.MessageStore
	maxLimit int
}

// NewMessagesHandler creates a new messages handler. maxLimit caps the
// page size of message listings.
func NewMessagesHandler(messages store.MessageStore, maxLimit int) *MessagesHandler {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &MessagesHandler{messages: messages, maxLimit: maxLimit}
}

// List handles GET /api/v1/messages. Messages are returned newest-first.
// The optional limit query parameter is capped at the configured maximum.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := h.maxLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		if n < limit {
			limit = n
		}
	}

	messages, err := h.messages.ListMessages(r.Context(), limit)
	if err != nil {
		log.Printf("failed to list messages: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	if messages == nil {
		messages = []store.Message{}
	}
	respondJSON(w, http.StatusOK, messages)
}

type createMessageRequest struct {
	SenderName string `json:"sender_name"`
	Message    string `json:"message"`
}

// Create handles POST /api/v1/messages. The timestamp is assigned by the
// server; clients only supply the sender name and the text.
func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	sender := strings.TrimSpace(req.SenderName)
	text := strings.TrimSpace(req.Message)
	if sender == "" {
		respondError(w, http.StatusBadRequest, "sender_name is required")
		return
	}
	if text == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	msg := &store.Message{
		SenderName: sender,
		Message:    text,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.messages.CreateMessage(r.Context(), msg); err != nil {
		log.Printf("failed to create message from %s: %v", sanitizeForLog(sender), err)
		respondError(w, http.StatusInternalServerError, "failed to create message")
		return
	}

	respondJSON(w, http.StatusCreated, msg)
}
