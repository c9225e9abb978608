package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siblingk/chatbot-sub001/internal/middleware"
)

// fallbackReply is what the visitor sees when the relay fails, whatever the
// cause.
const fallbackReply = "Sorry, something went wrong on our side. Please try again in a moment."

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type sendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendMessage relays one user utterance to the automation webhook and, on
// success, appends both sides of the exchange to the message log. On relay
// failure nothing is appended and the visitor gets the generic apology.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sessionID := middleware.SessionID(c)

	reply, err := h.relay.Send(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		slog.Error("relay send failed", "error", err, "session_id", sessionID)
		c.JSON(http.StatusOK, sendMessageResponse{Success: false, Message: fallbackReply})
		return
	}

	store := middleware.Store(c)
	err = h.sessions.Append(store,
		h.sessions.NewMessage(req.Message, true),
		h.sessions.NewMessage(reply, false),
	)
	if err != nil {
		slog.Error("append messages failed", "error", err, "session_id", sessionID)
	}

	c.JSON(http.StatusOK, sendMessageResponse{Success: true, Message: reply})
}

// Messages returns the full message log for this session.
func (h *Handler) Messages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.sessions.Messages(middleware.Store(c))})
}

// ClearMessages empties the session's message log.
func (h *Handler) ClearMessages(c *gin.Context) {
	h.sessions.ClearMessages(middleware.Store(c))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
