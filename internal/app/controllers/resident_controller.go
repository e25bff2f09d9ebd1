package controllers

import (
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceResidentController defines the resident endpoints
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	CreateResident()
	UpdateResident()
	DeleteResident()
	CountResidents()
}

// ResidentController handles resident requests
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController creates a resident controller
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *ResidentController) service() services.InterfaceResidentService {
	return c.Container.GetService("resident").(services.InterfaceResidentService)
}

// GetResidents lists all residents
func (c *ResidentController) GetResidents() {
	residents, err := c.service().GetAllResidents(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching residents")
		return
	}
	response.Success(c.Ctx, "", gin.H{"residents": residents})
}

// GetResident returns one resident
func (c *ResidentController) GetResident() {
	id, ok := paramID(c.Ctx, "id", "resident")
	if !ok {
		return
	}
	resident, err := c.service().GetResidentByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching resident")
		return
	}
	response.Success(c.Ctx, "", gin.H{"resident": resident})
}

// CreateResident adds a resident
func (c *ResidentController) CreateResident() {
	var in services.ResidentInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	resident, err := c.service().CreateResident(c.Ctx.Request.Context(), actorID(c.Ctx), in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error creating resident")
		return
	}
	response.Success(c.Ctx, "Resident created successfully", gin.H{
		"resident":   resident,
		"residentId": resident.ID,
	})
}

// UpdateResident rewrites a resident
func (c *ResidentController) UpdateResident() {
	id, ok := paramID(c.Ctx, "id", "resident")
	if !ok {
		return
	}
	var in services.ResidentInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	resident, err := c.service().UpdateResident(c.Ctx.Request.Context(), actorID(c.Ctx), id, in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error updating resident")
		return
	}
	response.Success(c.Ctx, "Resident updated successfully", gin.H{"resident": resident})
}

// DeleteResident removes a resident
func (c *ResidentController) DeleteResident() {
	id, ok := paramID(c.Ctx, "id", "resident")
	if !ok {
		return
	}
	if err := c.service().DeleteResident(c.Ctx.Request.Context(), actorID(c.Ctx), id); err != nil {
		response.Error(c.Ctx, err, "Server error deleting resident")
		return
	}
	response.Success(c.Ctx, "Resident deleted successfully", nil)
}

// CountResidents returns the number of residents
func (c *ResidentController) CountResidents() {
	count, err := c.service().CountResidents(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching residents count")
		return
	}
	response.Success(c.Ctx, "", gin.H{"count": count})
}

// HandleResidentFunc returns a gin handler for the resident controller
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "deleteResident":
			controller.DeleteResident()
		case "countResidents":
			controller.CountResidents()
		default:
			unknownMethod(ctx)
		}
	}
}
