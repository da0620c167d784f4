package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/server/handlers"
)

// Handlers bundles the HTTP adapters the router mounts.
type Handlers struct {
	Register *handlers.RegisterHandler
	Shifts   *handlers.ShiftsHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Alerts   *handlers.AlertsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	api.POST("/login", h.Auth.Login)

	reg := api.Group("/register")
	reg.GET("", h.Register.Status)
	reg.GET("/totals", h.Register.Totals)
	reg.PUT("/receptionist", h.Register.SetReceptionist)
	reg.PUT("/notes", h.Register.SetNotes)
	reg.POST("/checkins", h.Register.AddCheckEvent)
	reg.DELETE("/checkins/:id", h.Register.DeleteCheckEvent)
	reg.POST("/invoices", h.Register.AddInvoice)
	reg.DELETE("/invoices/:id", h.Register.DeleteInvoice)
	reg.POST("/income", h.Register.AddIncome)
	reg.DELETE("/income/:id", h.Register.DeleteIncome)
	reg.POST("/expenses", h.Register.AddExpense)
	reg.DELETE("/expenses/:id", h.Register.DeleteExpense)
	reg.POST("/pettycash", h.Register.InitPettyCash)
	reg.POST("/pettycash/unlock", h.Register.UnlockPettyCash)
	reg.POST("/close", h.Register.CloseShift)
	reg.POST("/handover/confirm", h.Register.ConfirmHandover)

	api.GET("/shifts", h.Shifts.List)
	api.GET("/shifts/:id", h.Shifts.Get)
	api.GET("/shifts/:id/report", h.Shifts.Report)
	api.GET("/metrics", h.Shifts.Metrics)

	api.GET("/users", h.Users.List)
	api.POST("/users", h.Users.Create)
	api.PUT("/users/:id", h.Users.Update)
	api.DELETE("/users/:id", h.Users.Delete)

	api.GET("/alerts", h.Alerts.List)
	api.POST("/alerts", h.Alerts.Create)
	api.PUT("/alerts/:id", h.Alerts.Update)
	api.DELETE("/alerts/:id", h.Alerts.Delete)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
