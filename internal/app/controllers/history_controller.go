package controllers

import (
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HistoryController serves the activity history
type HistoryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// HistoryQuery limits the number of entries returned
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

// NewHistoryController creates a history controller
func NewHistoryController(ctx *gin.Context, container *container.ServiceContainer) *HistoryController {
	return &HistoryController{Ctx: ctx, Container: container}
}

// GetHistory lists the latest history entries
func (c *HistoryController) GetHistory() {
	var q HistoryQuery
	if !bindQuery(c.Ctx, &q) {
		return
	}
	history, err := c.Container.GetService("history").(services.InterfaceHistoryService).
		GetHistory(c.Ctx.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching history")
		return
	}
	response.Success(c.Ctx, "", gin.H{"history": history})
}

// HandleHistoryFunc returns a gin handler for the history controller
func HandleHistoryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHistoryController(ctx, container)

		switch method {
		case "getHistory":
			controller.GetHistory()
		default:
			unknownMethod(ctx)
		}
	}
}
