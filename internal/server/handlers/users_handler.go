package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/repository/mongodb"
	"github.com/cytrico/frontdesk/internal/service/auth"
)

// UsersHandler exposes staff account management.
type UsersHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewUsersHandler constructs the HTTP handler adapter for account management.
func NewUsersHandler(svc *auth.Service, logger *zap.Logger) *UsersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersHandler{svc: svc, logger: logger}
}

func (h *UsersHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("user operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user operation failed"})
	}
}

// List returns staff accounts, optionally filtered by ?role=.
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create provisions a new staff account.
func (h *UsersHandler) Create(c *gin.Context) {
	var req auth.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Update replaces an account's mutable fields.
func (h *UsersHandler) Update(c *gin.Context) {
	var req auth.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes a staff account.
func (h *UsersHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
