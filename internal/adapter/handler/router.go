package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetingintel-team/meeting-intel/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	webhookHandler    *WebhookHandler
	meetingHandler    *MeetingHandler
	ragHandler        *RAGHandler
	clientHandler     *ClientHandler
	leadHandler       *LeadHandler
	hypothesisHandler *HypothesisHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	webhookHandler *WebhookHandler,
	meetingHandler *MeetingHandler,
	ragHandler *RAGHandler,
	clientHandler *ClientHandler,
	leadHandler *LeadHandler,
	hypothesisHandler *HypothesisHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		webhookHandler:    webhookHandler,
		meetingHandler:    meetingHandler,
		ragHandler:        ragHandler,
		clientHandler:     clientHandler,
		leadHandler:       leadHandler,
		hypothesisHandler: hypothesisHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupWebhookRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupRAGRoutes(v1)
	rt.setupClientRoutes(v1)
	rt.setupLeadRoutes(v1)
	rt.setupHypothesisRoutes(v1)
}

// setupWebhookRoutes configures provider callback routes
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	g.POST("/webhooks/fireflies", rt.webhookHandler.HandleFireflies)
}

// setupMeetingRoutes configures meeting pipeline routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.DELETE("/:id", rt.meetingHandler.Delete)
	meetingGroup.POST("/:id/type", rt.meetingHandler.SelectType)
	meetingGroup.GET("/:id/summaries", rt.meetingHandler.GetSummaries)
	meetingGroup.GET("/:id/dispatches", rt.meetingHandler.GetDispatches)
	meetingGroup.POST("/:id/redispatch", rt.meetingHandler.Redispatch)
	meetingGroup.POST("/:id/reindex", rt.meetingHandler.Reindex)
}

// setupRAGRoutes configures retrieval routes
func (rt *Router) setupRAGRoutes(g *echo.Group) {
	ragGroup := g.Group("/rag")

	ragGroup.POST("/ask", rt.ragHandler.Ask)
	ragGroup.POST("/index-all", rt.ragHandler.IndexAll)
}

// setupClientRoutes configures client management routes
func (rt *Router) setupClientRoutes(g *echo.Group) {
	clientGroup := g.Group("/clients")

	clientGroup.GET("", rt.clientHandler.List)
	clientGroup.POST("", rt.clientHandler.Create)
	clientGroup.GET("/:id", rt.clientHandler.Get)
	clientGroup.PUT("/:id", rt.clientHandler.Update)
	clientGroup.DELETE("/:id", rt.clientHandler.Delete)
	clientGroup.PUT("/:id/mapping", rt.clientHandler.SetMapping)
}

// setupLeadRoutes configures lead intake routes
func (rt *Router) setupLeadRoutes(g *echo.Group) {
	leadGroup := g.Group("/leads")

	leadGroup.GET("", rt.leadHandler.List)
	leadGroup.POST("", rt.leadHandler.Create)
	leadGroup.PUT("/:id", rt.leadHandler.Update)
	leadGroup.DELETE("/:id", rt.leadHandler.Delete)
}

// setupHypothesisRoutes configures growth experiment routes
func (rt *Router) setupHypothesisRoutes(g *echo.Group) {
	hypothesisGroup := g.Group("/hypotheses")

	hypothesisGroup.GET("", rt.hypothesisHandler.List)
	hypothesisGroup.POST("", rt.hypothesisHandler.Create)
	hypothesisGroup.GET("/:id", rt.hypothesisHandler.Get)
	hypothesisGroup.PATCH("/:id", rt.hypothesisHandler.Update)
	hypothesisGroup.DELETE("/:id", rt.hypothesisHandler.Delete)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
