package controllers

import (
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceHouseholdController defines the household endpoints
type InterfaceHouseholdController interface {
	GetHouseholds()
	GetHousehold()
	CreateHousehold()
	UpdateHousehold()
	DeleteHousehold()
	CountHouseholds()
}

// HouseholdController handles household requests
type HouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdController creates a household controller
func NewHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdController {
	return &HouseholdController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *HouseholdController) service() services.InterfaceHouseholdService {
	return c.Container.GetService("household").(services.InterfaceHouseholdService)
}

// GetHouseholds lists households with member counts
func (c *HouseholdController) GetHouseholds() {
	households, err := c.service().GetAllHouseholds(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching households")
		return
	}
	response.Success(c.Ctx, "", gin.H{"households": households})
}

// GetHousehold returns a household with its members
func (c *HouseholdController) GetHousehold() {
	id, ok := paramID(c.Ctx, "id", "household")
	if !ok {
		return
	}
	household, err := c.service().GetHouseholdByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching household")
		return
	}
	response.Success(c.Ctx, "", gin.H{"household": household})
}

// CreateHousehold adds a household and its roster
func (c *HouseholdController) CreateHousehold() {
	var in services.HouseholdInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	household, err := c.service().CreateHousehold(c.Ctx.Request.Context(), actorID(c.Ctx), in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error creating household")
		return
	}
	response.Success(c.Ctx, "Household created successfully", gin.H{
		"household":   household,
		"householdId": household.ID,
	})
}

// UpdateHousehold rewrites a household and, when given, its roster
func (c *HouseholdController) UpdateHousehold() {
	id, ok := paramID(c.Ctx, "id", "household")
	if !ok {
		return
	}
	var in services.HouseholdInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	household, err := c.service().UpdateHousehold(c.Ctx.Request.Context(), actorID(c.Ctx), id, in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error updating household")
		return
	}
	response.Success(c.Ctx, "Household updated successfully", gin.H{"household": household})
}

// DeleteHousehold removes a household and its roster
func (c *HouseholdController) DeleteHousehold() {
	id, ok := paramID(c.Ctx, "id", "household")
	if !ok {
		return
	}
	if err := c.service().DeleteHousehold(c.Ctx.Request.Context(), actorID(c.Ctx), id); err != nil {
		response.Error(c.Ctx, err, "Server error deleting household")
		return
	}
	response.Success(c.Ctx, "Household deleted successfully", nil)
}

// CountHouseholds returns the number of households
func (c *HouseholdController) CountHouseholds() {
	count, err := c.service().CountHouseholds(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching households count")
		return
	}
	response.Success(c.Ctx, "", gin.H{"count": count})
}

// HandleHouseholdFunc returns a gin handler for the household controller
func HandleHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdController(ctx, container)

		switch method {
		case "getHouseholds":
			controller.GetHouseholds()
		case "getHousehold":
			controller.GetHousehold()
		case "createHousehold":
			controller.CreateHousehold()
		case "updateHousehold":
			controller.UpdateHousehold()
		case "deleteHousehold":
			controller.DeleteHousehold()
		case "countHouseholds":
			controller.CountHouseholds()
		default:
			unknownMethod(ctx)
		}
	}
}
