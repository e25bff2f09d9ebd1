package controllers

import (
	"errors"
	"io"
	"time"

	"sk-barangay-service/internal/app/middleware"
	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// TimeLogController handles staff session logging
type TimeLogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// CreateTimeLogRequest lets an admin log a session for another user
type CreateTimeLogRequest struct {
	UserID uint `json:"userId"`
}

// UpdateTimeLogRequest closes a session; an omitted time means now
type UpdateTimeLogRequest struct {
	LoggedOut *time.Time `json:"logged_out"`
}

// TimeLogQuery filters the session list
type TimeLogQuery struct {
	UserID uint `form:"userId"`
	Limit  int  `form:"limit" binding:"omitempty,min=0"`
}

// NewTimeLogController creates a time log controller
func NewTimeLogController(ctx *gin.Context, container *container.ServiceContainer) *TimeLogController {
	return &TimeLogController{Ctx: ctx, Container: container}
}

func (c *TimeLogController) service() services.InterfaceTimeLogService {
	return c.Container.GetService("time_log").(services.InterfaceTimeLogService)
}

// CreateTimeLog opens a session for the caller
func (c *TimeLogController) CreateTimeLog() {
	var req CreateTimeLogRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ParamError(c.Ctx, bindMessage(err))
		return
	}

	userID := actorID(c.Ctx)
	if req.UserID != 0 && req.UserID != userID {
		if c.Ctx.GetString(middleware.ContextPosition) != models.PositionAdmin {
			response.FailWithMessage(c.Ctx, code.ErrForbidden, "Only admins can log time for other users")
			return
		}
		userID = req.UserID
	}

	entry, err := c.service().CreateTimeLog(c.Ctx.Request.Context(), userID)
	if err != nil {
		response.Error(c.Ctx, err, "Server error creating time log")
		return
	}
	response.Success(c.Ctx, "Time log created successfully", gin.H{"timeLogId": entry.ID})
}

// UpdateTimeLog closes a session
func (c *TimeLogController) UpdateTimeLog() {
	id, ok := paramID(c.Ctx, "id", "time log")
	if !ok {
		return
	}
	var req UpdateTimeLogRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ParamError(c.Ctx, bindMessage(err))
		return
	}
	entry, err := c.service().UpdateTimeLog(c.Ctx.Request.Context(), id, req.LoggedOut)
	if err != nil {
		response.Error(c.Ctx, err, "Server error updating time log")
		return
	}
	response.Success(c.Ctx, "Time log updated successfully", gin.H{"timeLog": entry})
}

// GetTimeLogs lists sessions, newest first
func (c *TimeLogController) GetTimeLogs() {
	var q TimeLogQuery
	if !bindQuery(c.Ctx, &q) {
		return
	}
	logs, err := c.service().GetTimeLogs(c.Ctx.Request.Context(), q.UserID, q.Limit)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching time logs")
		return
	}
	response.Success(c.Ctx, "", gin.H{"timeLogs": logs})
}

// GetTimeLog returns one session
func (c *TimeLogController) GetTimeLog() {
	id, ok := paramID(c.Ctx, "id", "time log")
	if !ok {
		return
	}
	entry, err := c.service().GetTimeLogByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching time log")
		return
	}
	response.Success(c.Ctx, "", gin.H{"timeLog": entry})
}

// HandleTimeLogFunc returns a gin handler for the time log controller
func HandleTimeLogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTimeLogController(ctx, container)

		switch method {
		case "createTimeLog":
			controller.CreateTimeLog()
		case "updateTimeLog":
			controller.UpdateTimeLog()
		case "getTimeLogs":
			controller.GetTimeLogs()
		case "getTimeLog":
			controller.GetTimeLog()
		default:
			unknownMethod(ctx)
		}
	}
}
