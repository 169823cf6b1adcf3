package httpx

import (
	"context"
	"net/http"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// MessageServiceInterface defines the messaging operations the handlers need.
type MessageServiceInterface interface {
	Conversations(ctx context.Context, token, userID string) ([]*model.Conversation, error)
	History(ctx context.Context, token, userID, otherUserID string) ([]*model.Message, error)
	Send(ctx context.Context, token, userID string, req *model.SendMessageRequest) (*model.Message, error)
	MarkRead(ctx context.Context, token, userID, otherUserID string) error
}

// MessageHandlers provides HTTP handlers for messaging operations.
type MessageHandlers struct {
	Svc    MessageServiceInterface
	Tokens TokenSource
}

// Conversations handles GET /api/messages/conversations.
func (h *MessageHandlers) Conversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.Svc.Conversations(r.Context(), requestToken(r, h.Tokens), requestUserID(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, convs)
}

// History handles GET /api/messages/{userId}.
func (h *MessageHandlers) History(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Svc.History(r.Context(), requestToken(r, h.Tokens), requestUserID(r), r.PathValue("userId"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, msgs)
}

// Send handles POST /api/messages.
func (h *MessageHandlers) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Svc.Send(r.Context(), requestToken(r, h.Tokens), requestUserID(r), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, msg)
}

// MarkRead handles PUT /api/messages/{userId}/read.
func (h *MessageHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.Svc.MarkRead(r.Context(), requestToken(r, h.Tokens), requestUserID(r), r.PathValue("userId"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
