package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/siblingk/chatbot-sub001/internal/domain"
	"github.com/siblingk/chatbot-sub001/internal/middleware"
)

// DashboardOptions lists the active quick replies, in display order.
func (h *Handler) DashboardOptions(c *gin.Context) {
	options, err := h.dashboard.ActiveOptions(c.Request.Context())
	if err != nil {
		slog.Error("list dashboard options failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if options == nil {
		options = []domain.DashboardOption{}
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

// SelectOption resolves one quick reply and appends the exchange to the log:
// the option label as the visitor's turn, its canned response as the
// assistant's.
func (h *Handler) SelectOption(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}

	option, err := h.dashboard.Resolve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("resolve dashboard option failed", "error", err, "option_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	err = h.sessions.Append(middleware.Store(c),
		h.sessions.NewMessage(option.Label, true),
		h.sessions.NewMessage(option.Response, false),
	)
	if err != nil {
		slog.Error("append canned response failed", "error", err, "option_id", id)
	}

	c.JSON(http.StatusOK, sendMessageResponse{Success: true, Message: option.Response})
}
