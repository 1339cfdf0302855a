package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"pantrybot/internal/assistant"
	"pantrybot/internal/cache"
	"pantrybot/internal/monitoring"
)

// Server is the HTTP surface of the pantry backend.
type Server struct {
	Router      *gin.Engine
	interpreter *assistant.Interpreter
	provider    assistant.CompletionProvider
	db          *gorm.DB
	guard       cache.IdempotencyGuard
	monitor     *monitoring.Monitor
	auth        *Authenticator
}

// New wires all handlers onto a fresh router. The completion provider is the
// same instance the interpreter uses; recipe generation shares it.
func New(
	interpreter *assistant.Interpreter,
	provider assistant.CompletionProvider,
	db *gorm.DB,
	guard cache.IdempotencyGuard,
	monitor *monitoring.Monitor,
	auth *Authenticator,
) *Server {
	s := &Server{
		Router:      gin.Default(),
		interpreter: interpreter,
		provider:    provider,
		db:          db,
		guard:       guard,
		monitor:     monitor,
		auth:        auth,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "pantrybot API is running"})
	})

	// WebSocket chat authenticates via query token inside the handler.
	s.Router.GET("/ws/chat", s.handleChatSocket)

	v1 := s.Router.Group("/api/v1")
	v1.Use(s.auth.Middleware())
	{
		// Conversational assistant
		v1.POST("/chat", s.handleChat)

		// Pantry items
		v1.GET("/items", s.listItems)
		v1.POST("/items", s.createItem)
		v1.DELETE("/items/:id", s.deleteItem)
		v1.POST("/items/:id/increment", s.incrementItem)
		v1.POST("/items/:id/decrement", s.decrementItem)

		// Dashboard
		v1.GET("/dashboard/summary", s.dashboardSummary)

		// Recipes
		v1.GET("/recipes", s.listRecipes)
		v1.POST("/recipes/generate", s.generateRecipe)
		v1.DELETE("/recipes/:id", s.deleteRecipe)

		// Runtime status
		v1.GET("/status", s.handleStatus)
	}
}

// handleStatus reports the monitor's current metrics
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
