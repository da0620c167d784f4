package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/service/register"
)

// RegisterHandler exposes the turn register over HTTP.
type RegisterHandler struct {
	svc    *register.Service
	logger *zap.Logger
}

// NewRegisterHandler constructs the HTTP handler adapter for the register.
func NewRegisterHandler(svc *register.Service, logger *zap.Logger) *RegisterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegisterHandler{svc: svc, logger: logger}
}

// registerStatusCode maps register error classes to HTTP statuses.
func registerStatusCode(err error) int {
	switch {
	case errors.Is(err, register.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, register.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, register.ErrAuthConfirmation):
		return http.StatusForbidden
	case errors.Is(err, register.ErrPendingHandover),
		errors.Is(err, register.ErrNoPendingHandover),
		errors.Is(err, register.ErrCashLocked):
		return http.StatusConflict
	case errors.Is(err, register.ErrPersistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *RegisterHandler) fail(c *gin.Context, err error) {
	status := registerStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("register operation failed", zap.Error(err))
	} else {
		h.logger.Warn("register operation rejected", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Status returns the current register snapshot.
func (h *RegisterHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status())
}

// Totals returns the open shift's derived figures.
func (h *RegisterHandler) Totals(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Totals())
}

// SetReceptionist records the outgoing operator's name.
func (h *RegisterHandler) SetReceptionist(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.SetReceptionist(req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetNotes replaces the open shift's handover notes.
func (h *RegisterHandler) SetNotes(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.SetNotes(req.Notes); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCheckEvent registers a room movement.
func (h *RegisterHandler) AddCheckEvent(c *gin.Context) {
	var req register.CheckEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	event, err := h.svc.AddCheckEvent(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// AddInvoice records an issued invoice.
func (h *RegisterHandler) AddInvoice(c *gin.Context) {
	var req register.InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	invoice, err := h.svc.AddInvoice(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// AddIncome records a main-till income entry.
func (h *RegisterHandler) AddIncome(c *gin.Context) {
	var req register.IncomeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	income, err := h.svc.AddIncome(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, income)
}

// AddExpense records a petty-cash expense.
func (h *RegisterHandler) AddExpense(c *gin.Context) {
	var req register.ExpenseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	expense, err := h.svc.AddExpense(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// DeleteCheckEvent removes a room movement by id.
func (h *RegisterHandler) DeleteCheckEvent(c *gin.Context) {
	if err := h.svc.DeleteCheckEvent(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteInvoice removes an invoice by id.
func (h *RegisterHandler) DeleteInvoice(c *gin.Context) {
	if err := h.svc.DeleteInvoice(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteIncome removes an income entry by id.
func (h *RegisterHandler) DeleteIncome(c *gin.Context) {
	if err := h.svc.DeleteIncome(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteExpense removes an expense by id, crediting petty cash back.
func (h *RegisterHandler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// InitPettyCash sets and locks the opening petty-cash amount.
func (h *RegisterHandler) InitPettyCash(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.InitPettyCash(c.Request.Context(), req.Amount); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlockPettyCash re-opens the opening-amount input.
func (h *RegisterHandler) UnlockPettyCash(c *gin.Context) {
	h.svc.UnlockPettyCash()
	c.Status(http.StatusNoContent)
}

// CloseShift runs the handover protocol. On full success the generated
// report is returned as a download; when only the report failed, the
// response carries the persisted record id so the report can be
// regenerated.
func (h *RegisterHandler) CloseShift(c *gin.Context) {
	result, err := h.svc.CloseShift(c.Request.Context())
	if err != nil {
		if errors.Is(err, register.ErrDocumentGeneration) && result != nil {
			h.logger.Error("shift persisted but report failed", zap.String("record_id", result.Record.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "shift saved but report generation failed; regenerate it from the shift history",
				"recordId": result.Record.ID,
				"next":     result.Next,
			})
			return
		}
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Record-Id", result.Record.ID)
	c.Header("X-Next-Shift", string(result.Next))
	c.Data(http.StatusOK, "application/pdf", result.Report)
}

// ConfirmHandover completes the rotation after verifying the incoming
// receptionist's identity.
func (h *RegisterHandler) ConfirmHandover(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	next, err := h.svc.ConfirmHandover(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": next, "shiftLabel": next.Label()})
}
