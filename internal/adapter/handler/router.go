package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/johnquangdev/meeting-summarizer/docs"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	transcriptHandler *TranscriptHandler
	summaryHandler    *SummaryHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, transcriptHandler *TranscriptHandler, summaryHandler *SummaryHandler) *Router {
	return &Router{
		cfg:               cfg,
		transcriptHandler: transcriptHandler,
		summaryHandler:    summaryHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupTranscriptRoutes(v1)
	rt.setupSummaryRoutes(v1)
}

// setupTranscriptRoutes configures transcript submission and job routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcripts := g.Group("/transcripts")
	transcripts.POST("", rt.transcriptHandler.Submit)
	transcripts.POST("/:meeting_id/audio", rt.transcriptHandler.SubmitAudio)
	transcripts.GET("/:meeting_id", rt.transcriptHandler.Get)

	g.GET("/jobs/:meeting_id", rt.transcriptHandler.JobStatus)
}

// setupSummaryRoutes configures summary retrieval routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	summaries := g.Group("/summaries")
	summaries.GET("/:meeting_id", rt.summaryHandler.Get)
	summaries.DELETE("/:meeting_id", rt.summaryHandler.Delete)

	g.GET("/providers", rt.summaryHandler.Providers)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
