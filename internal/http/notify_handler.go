package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/notify"
)

type NotifyHandler struct {
	dispatcher notify.Dispatcher
	logger     *zap.Logger
}

func NewNotifyHandler(dispatcher notify.Dispatcher, logger *zap.Logger) *NotifyHandler {
	return &NotifyHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type LoginNotifyRequestDTO struct {
	Email string `json:"email"`
}

// LoginAlert sends the welcome-back email after a successful sign-in.
func (h *NotifyHandler) LoginAlert(w http.ResponseWriter, r *http.Request) {
	if h.dispatcher == nil || !h.dispatcher.Configured() {
		respondError(w, http.StatusServiceUnavailable, "notification service not configured")
		return
	}

	var req LoginNotifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.dispatcher.SendLoginAlert(r.Context(), req.Email); err != nil {
		h.logger.Warn("login alert dispatch failed",
			zap.String("to", req.Email), zap.Error(err))
		respondError(w, http.StatusBadGateway, "failed to send login notification")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
