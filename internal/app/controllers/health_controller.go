package controllers

import (
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController answers liveness and readiness probes
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{Ctx: ctx, Container: container}
}

// Ping reports that the process is up
func (c *HealthController) Ping() {
	response.Success(c.Ctx, "Server is running", nil)
}

// Status pings the database and reports pool statistics
func (c *HealthController) Status() {
	db := c.Container.GetService("db").(*gorm.DB)
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Ctx.Request.Context())
	}
	if err != nil {
		response.Error(c.Ctx, err, "Database unavailable")
		return
	}

	stats := sqlDB.Stats()
	response.Success(c.Ctx, "Server is running", gin.H{
		"database": gin.H{
			"status":           "up",
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
		},
	})
}

// HandleHealthFunc returns a gin handler for the health controller
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			unknownMethod(ctx)
		}
	}
}
