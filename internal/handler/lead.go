package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siblingk/chatbot-sub001/internal/domain"
	"github.com/siblingk/chatbot-sub001/internal/middleware"
)

// GetLead returns the lead tracking this session's conversation.
func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.leads.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("get lead failed", "error", err, "session_id", middleware.SessionID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves the session's lead to the requested status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	lead, err := h.leads.UpdateStatus(c.Request.Context(),
		middleware.SessionID(c), middleware.UserID(c), domain.ChatStatus(req.Status))
	h.respondLead(c, lead, err)
}

type updateStageRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

type stageUpdate func(c *gin.Context, data json.RawMessage) (*domain.ChatLead, error)

func (h *Handler) UpdatePreQuote(c *gin.Context) {
	h.updateStage(c, func(c *gin.Context, data json.RawMessage) (*domain.ChatLead, error) {
		return h.leads.UpdatePreQuote(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), data)
	})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	h.updateStage(c, func(c *gin.Context, data json.RawMessage) (*domain.ChatLead, error) {
		return h.leads.UpdateAppointment(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), data)
	})
}

func (h *Handler) UpdateQuote(c *gin.Context) {
	h.updateStage(c, func(c *gin.Context, data json.RawMessage) (*domain.ChatLead, error) {
		return h.leads.UpdateQuote(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), data)
	})
}

func (h *Handler) UpdateInvoice(c *gin.Context) {
	h.updateStage(c, func(c *gin.Context, data json.RawMessage) (*domain.ChatLead, error) {
		return h.leads.UpdateInvoice(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), data)
	})
}

func (h *Handler) updateStage(c *gin.Context, update stageUpdate) {
	var req updateStageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	lead, err := update(c, req.Data)
	h.respondLead(c, lead, err)
}

// respondLead maps lead mutation outcomes onto the wire contract: an absent
// authenticated user makes the mutation a silent no-op, everything else
// unexpected collapses to one generic error.
func (h *Handler) respondLead(c *gin.Context, lead *domain.ChatLead, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, lead)
	case errors.Is(err, domain.ErrNoAuthenticatedUser):
		slog.Debug("lead mutation skipped, no user", "session_id", middleware.SessionID(c))
		c.JSON(http.StatusOK, gin.H{"status": "skipped"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
	default:
		slog.Error("lead mutation failed", "error", err, "session_id", middleware.SessionID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// LeadStats aggregates the authenticated user's leads.
func (h *Handler) LeadStats(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	stats, err := h.leads.Stats(c.Request.Context(), userID)
	if err != nil {
		slog.Error("lead stats failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
