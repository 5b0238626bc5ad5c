// Package api is the HTTP front end. It is a thin adapter: every chat
// message funnels into the orchestrator's Handle entry point and the
// remaining routes are read-only views over the stores.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tandoor/internal/catalog"
	"tandoor/internal/kitchen"
	"tandoor/internal/orchestrator"
)

// Server bundles the router with the components it fronts
type Server struct {
	Router  *gin.Engine
	orch    *orchestrator.Orchestrator
	catalog *catalog.Catalog
	store   kitchen.OrderStore
	log     *logrus.Entry
}

// NewServer creates the API server and registers all routes
func NewServer(orch *orchestrator.Orchestrator, cat *catalog.Catalog, store kitchen.OrderStore) *Server {
	s := &Server{
		Router:  gin.Default(),
		orch:    orch,
		catalog: cat,
		store:   store,
		log:     logrus.WithField("component", "api"),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Tandoor API is running"})
	})

	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		v1.POST("/chat", s.HandleChat)
		v1.GET("/menu", s.GetMenu)
		v1.GET("/orders/:customerId", s.GetOrders)
	}
}

// ChatRequest is one inbound customer message
type ChatRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// HandleChat routes a customer message through the orchestrator
func (s *Server) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.orch.Handle(c.Request.Context(), req.CustomerID, req.Text)
	c.JSON(http.StatusOK, result)
}

// GetMenu returns the full static menu grouped by category
func (s *Server) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": s.catalog.ByCategory()})
}

// GetOrders returns a customer's recent orders, newest first
func (s *Server) GetOrders(c *gin.Context) {
	customerID := c.Param("customerId")
	orders := s.store.OrdersForCustomer(customerID, 20)
	c.JSON(http.StatusOK, gin.H{"customerId": customerID, "orders": orders})
}
