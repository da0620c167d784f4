package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/repository/mongodb"
	"github.com/cytrico/frontdesk/internal/service/alerts"
)

// AlertsHandler exposes operational alert management.
type AlertsHandler struct {
	svc    *alerts.Service
	logger *zap.Logger
}

// NewAlertsHandler constructs the HTTP handler adapter for alerts.
func NewAlertsHandler(svc *alerts.Service, logger *zap.Logger) *AlertsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertsHandler{svc: svc, logger: logger}
}

func (h *AlertsHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, alerts.ErrInvalidAlert):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("alert operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "alert operation failed"})
	}
}

// List returns all alerts ordered by due time.
func (h *AlertsHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create validates and persists a new alert.
func (h *AlertsHandler) Create(c *gin.Context) {
	var req alerts.AlertInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	alert, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

// Update replaces an alert's fields.
func (h *AlertsHandler) Update(c *gin.Context) {
	var req alerts.AlertInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	alert, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// Delete removes an alert.
func (h *AlertsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
