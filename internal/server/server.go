// Package server exposes the application over HTTP: entity creation and
// listing endpoints, schema introspection, diagnostics, and metrics.
// Handlers stay thin; entity construction and split normalization live in
// the service layer.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nvenk/divvy/internal/docstore"
	"github.com/nvenk/divvy/internal/middleware"
	"github.com/nvenk/divvy/internal/service"
)

// Server holds the services behind the HTTP surface.
type Server struct {
	store    docstore.Store
	users    *service.UserService
	groups   *service.GroupService
	expenses *service.ExpenseService
}

// New creates a Server over the given storage backend.
func New(store docstore.Store) *Server {
	return &Server{
		store:    store,
		users:    service.NewUserService(store),
		groups:   service.NewGroupService(store),
		expenses: service.NewExpenseService(store),
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		cors.New(corsConfig()),
	)

	r.GET("/", s.handleRoot)
	r.GET("/test", s.handleStatus)
	r.GET("/schema", s.handleSchema)
	r.GET("/metrics", middleware.MetricsHandler())

	r.POST("/users", s.handleCreateUser)
	r.GET("/users", s.handleListUsers)

	r.POST("/groups", s.handleCreateGroup)
	r.GET("/groups", s.handleListGroups)

	r.POST("/expenses", s.handleCreateExpense)
	r.GET("/expenses", s.handleListExpenses)

	return r
}

// corsConfig allows any origin with credentials, matching the permissive
// posture of the browser clients this backend serves. AllowOriginFunc is
// used because the cors package refuses wildcard origins combined with
// credentials.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOriginFunc = func(string) bool { return true }
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return cfg
}
