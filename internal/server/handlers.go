package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvenk/divvy/internal/schema"
	"github.com/nvenk/divvy/internal/service"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Divvy expense backend running"})
}

// handleStatus reports storage connectivity and the populated collections,
// for deploy-time smoke checks and the database viewer.
func (s *Server) handleStatus(c *gin.Context) {
	status := gin.H{
		"backend":     "running",
		"database":    "not available",
		"collections": []string{},
	}

	if err := s.store.Ping(c.Request.Context()); err != nil {
		status["database"] = "error: " + err.Error()
		c.JSON(http.StatusOK, status)
		return
	}
	status["database"] = "connected"

	if collections, err := s.store.Collections(c.Request.Context()); err == nil {
		if collections == nil {
			collections = []string{}
		}
		status["collections"] = collections
	} else {
		status["database"] = "connected, listing failed: " + err.Error()
	}

	c.JSON(http.StatusOK, status)
}

func (s *Server) handleSchema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": schema.Models()})
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req service.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := s.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) handleListUsers(c *gin.Context) {
	docs, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeDocs(docs))
}

func (s *Server) handleCreateGroup(c *gin.Context) {
	var req service.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := s.groups.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) handleListGroups(c *gin.Context) {
	docs, err := s.groups.List(c.Request.Context(), c.Query("member"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeDocs(docs))
}

func (s *Server) handleCreateExpense(c *gin.Context) {
	var req service.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := s.expenses.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListExpenses(c *gin.Context) {
	docs, err := s.expenses.List(c.Request.Context(), c.Query("group_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeDocs(docs))
}

// bindJSON decodes the request body, responding with 400 on malformed
// payloads. Field-level constraints are the services' job, not binding's.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid_payload",
			"detail": err.Error(),
		})
		return false
	}
	return true
}
