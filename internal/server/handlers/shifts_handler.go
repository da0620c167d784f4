package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/repository/mongodb"
	"github.com/cytrico/frontdesk/internal/service/metrics"
	"github.com/cytrico/frontdesk/internal/service/register"
)

// ShiftsHandler exposes the closed-shift history, report regeneration, and
// the metrics summary.
type ShiftsHandler struct {
	repo       *mongodb.Repository
	registry   *register.Service
	metricsSvc *metrics.Service
	logger     *zap.Logger
}

// NewShiftsHandler constructs the HTTP handler adapter for shift history.
func NewShiftsHandler(repo *mongodb.Repository, registry *register.Service, metricsSvc *metrics.Service, logger *zap.Logger) *ShiftsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftsHandler{repo: repo, registry: registry, metricsSvc: metricsSvc, logger: logger}
}

// List returns closed shifts, newest first, capped by ?limit=.
func (h *ShiftsHandler) List(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	records, err := h.repo.ListShifts(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("listing shifts failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load shift history"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Get returns one closed shift by id.
func (h *ShiftsHandler) Get(c *gin.Context) {
	record, err := h.repo.GetShift(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("fetching shift failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load shift"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// Report regenerates the handover report for a persisted shift and returns
// it as a download.
func (h *ShiftsHandler) Report(c *gin.Context) {
	data, filename, err := h.registry.RegenerateReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, mongodb.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "shift not found"})
		case errors.Is(err, register.ErrPersistence):
			h.logger.Error("loading shift for report failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not load shift"})
		default:
			h.logger.Error("report regeneration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Metrics returns the aggregate summary over the last ?days= days.
func (h *ShiftsHandler) Metrics(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}

	summary, err := h.metricsSvc.Summarize(c.Request.Context(), days)
	if err != nil {
		h.logger.Error("metrics summary failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not compute metrics"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
