// Package handler exposes the chat core over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siblingk/chatbot-sub001/internal/middleware"
	"github.com/siblingk/chatbot-sub001/internal/service"
)

// Handler holds all dependencies needed by the HTTP handlers.
type Handler struct {
	sessions  *service.SessionService
	relay     *service.RelayService
	leads     *service.LeadService
	dashboard *service.DashboardService
	limits    middleware.Limiter
	jwtSecret string
	secure    bool
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Sessions  *service.SessionService
	Relay     *service.RelayService
	Leads     *service.LeadService
	Dashboard *service.DashboardService
	Limits    middleware.Limiter
	JWTSecret string
	Secure    bool
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		sessions:  deps.Sessions,
		relay:     deps.Relay,
		leads:     deps.Leads,
		dashboard: deps.Dashboard,
		limits:    deps.Limits,
		jwtSecret: deps.JWTSecret,
		secure:    deps.Secure,
	}
}

// Register attaches all routes to the engine. The health check stays outside
// the session chain so uptime checks never mint a session cookie.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api",
		middleware.Session(h.sessions, h.secure),
		middleware.Auth(h.jwtSecret),
		middleware.Logging(),
	)
	{
		chat := api.Group("/chat")
		chat.POST("/message", middleware.RateLimit(h.limits), h.SendMessage)
		chat.GET("/messages", h.Messages)
		chat.DELETE("/messages", h.ClearMessages)

		lead := chat.Group("/lead")
		lead.GET("", h.GetLead)
		lead.GET("/stats", h.LeadStats)
		lead.POST("/status", h.UpdateStatus)
		lead.POST("/prequote", h.UpdatePreQuote)
		lead.POST("/appointment", h.UpdateAppointment)
		lead.POST("/quote", h.UpdateQuote)
		lead.POST("/invoice", h.UpdateInvoice)

		dashboard := api.Group("/dashboard")
		dashboard.GET("/options", h.DashboardOptions)
		dashboard.POST("/options/:id/select", h.SelectOption)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
