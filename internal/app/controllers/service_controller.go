package controllers

import (
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceServiceController defines the community service endpoints
type InterfaceServiceController interface {
	GetServices()
	GetService()
	CreateService()
	UpdateService()
	DeleteService()
	CountServices()
	GetBeneficiaries()
	AddBeneficiary()
	RemoveBeneficiary()
}

// ServiceController handles community service and beneficiary requests
type ServiceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// BeneficiaryRequest links a resident to a service
type BeneficiaryRequest struct {
	ResidentID uint `json:"resident_id"`
}

// NewServiceController creates a community service controller
func NewServiceController(ctx *gin.Context, container *container.ServiceContainer) *ServiceController {
	return &ServiceController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *ServiceController) service() services.InterfaceCommunityService {
	return c.Container.GetService("service").(services.InterfaceCommunityService)
}

// GetServices lists services with beneficiary counts
func (c *ServiceController) GetServices() {
	list, err := c.service().GetAllServices(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching services")
		return
	}
	response.Success(c.Ctx, "", gin.H{"services": list})
}

// GetService returns one service
func (c *ServiceController) GetService() {
	id, ok := paramID(c.Ctx, "id", "service")
	if !ok {
		return
	}
	service, err := c.service().GetServiceByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching service")
		return
	}
	response.Success(c.Ctx, "", gin.H{"service": service})
}

// CreateService adds a service
func (c *ServiceController) CreateService() {
	var in services.ServiceInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	service, err := c.service().CreateService(c.Ctx.Request.Context(), actorID(c.Ctx), in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error creating service")
		return
	}
	response.Success(c.Ctx, "Service created successfully", gin.H{
		"service":   service,
		"serviceId": service.ID,
	})
}

// UpdateService rewrites a service
func (c *ServiceController) UpdateService() {
	id, ok := paramID(c.Ctx, "id", "service")
	if !ok {
		return
	}
	var in services.ServiceInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	service, err := c.service().UpdateService(c.Ctx.Request.Context(), actorID(c.Ctx), id, in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error updating service")
		return
	}
	response.Success(c.Ctx, "Service updated successfully", gin.H{"service": service})
}

// DeleteService removes a service and its beneficiaries
func (c *ServiceController) DeleteService() {
	id, ok := paramID(c.Ctx, "id", "service")
	if !ok {
		return
	}
	if err := c.service().DeleteService(c.Ctx.Request.Context(), actorID(c.Ctx), id); err != nil {
		response.Error(c.Ctx, err, "Server error deleting service")
		return
	}
	response.Success(c.Ctx, "Service deleted successfully", nil)
}

// CountServices returns the number of services
func (c *ServiceController) CountServices() {
	count, err := c.service().CountServices(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching services count")
		return
	}
	response.Success(c.Ctx, "", gin.H{"count": count})
}

// GetBeneficiaries lists the residents of a service
func (c *ServiceController) GetBeneficiaries() {
	id, ok := paramID(c.Ctx, "id", "service")
	if !ok {
		return
	}
	beneficiaries, err := c.service().GetBeneficiaries(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching beneficiaries")
		return
	}
	response.Success(c.Ctx, "", gin.H{"beneficiaries": beneficiaries})
}

// AddBeneficiary links a resident to a service
func (c *ServiceController) AddBeneficiary() {
	id, ok := paramID(c.Ctx, "id", "service")
	if !ok {
		return
	}
	var req BeneficiaryRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	beneficiary, err := c.service().AddBeneficiary(c.Ctx.Request.Context(), id, req.ResidentID)
	if err != nil {
		response.Error(c.Ctx, err, "Server error adding beneficiary")
		return
	}
	response.Success(c.Ctx, "Beneficiary added successfully", gin.H{"beneficiaryId": beneficiary.ID})
}

// RemoveBeneficiary unlinks a beneficiary
func (c *ServiceController) RemoveBeneficiary() {
	id, ok := paramID(c.Ctx, "id", "service")
	if !ok {
		return
	}
	beneficiaryID, ok := paramID(c.Ctx, "beneficiaryId", "beneficiary")
	if !ok {
		return
	}
	if err := c.service().RemoveBeneficiary(c.Ctx.Request.Context(), id, beneficiaryID); err != nil {
		response.Error(c.Ctx, err, "Server error removing beneficiary")
		return
	}
	response.Success(c.Ctx, "Beneficiary removed successfully", nil)
}

// HandleServiceFunc returns a gin handler for the community service controller
func HandleServiceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewServiceController(ctx, container)

		switch method {
		case "getServices":
			controller.GetServices()
		case "getService":
			controller.GetService()
		case "createService":
			controller.CreateService()
		case "updateService":
			controller.UpdateService()
		case "deleteService":
			controller.DeleteService()
		case "countServices":
			controller.CountServices()
		case "getBeneficiaries":
			controller.GetBeneficiaries()
		case "addBeneficiary":
			controller.AddBeneficiary()
		case "removeBeneficiary":
			controller.RemoveBeneficiary()
		default:
			unknownMethod(ctx)
		}
	}
}
