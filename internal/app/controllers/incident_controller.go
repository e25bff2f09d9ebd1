package controllers

import (
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceIncidentController defines the incident endpoints
type InterfaceIncidentController interface {
	GetIncidents()
	GetIncident()
	CreateIncident()
	UpdateIncident()
	DeleteIncident()
	CountIncidents()
	NextReference()
}

// IncidentController handles incident requests
type IncidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// IncidentQuery holds the list filters
type IncidentQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=all pending ongoing resolved dismissed"`
	Month  string `form:"month"`
	Year   string `form:"year"`
}

// NewIncidentController creates an incident controller
func NewIncidentController(ctx *gin.Context, container *container.ServiceContainer) *IncidentController {
	return &IncidentController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *IncidentController) service() services.InterfaceIncidentService {
	return c.Container.GetService("incident").(services.InterfaceIncidentService)
}

// GetIncidents lists incidents, optionally filtered by status, month and year
func (c *IncidentController) GetIncidents() {
	var q IncidentQuery
	if !bindQuery(c.Ctx, &q) {
		return
	}
	incidents, err := c.service().GetAllIncidents(c.Ctx.Request.Context(), services.IncidentFilter{
		Status: q.Status,
		Month:  q.Month,
		Year:   q.Year,
	})
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching incidents")
		return
	}
	response.Success(c.Ctx, "", gin.H{"incidents": incidents})
}

// GetIncident returns one incident
func (c *IncidentController) GetIncident() {
	id, ok := paramID(c.Ctx, "id", "incident")
	if !ok {
		return
	}
	incident, err := c.service().GetIncidentByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching incident")
		return
	}
	response.Success(c.Ctx, "", gin.H{"incident": incident})
}

// CreateIncident records an incident, numbering it when no reference is given
func (c *IncidentController) CreateIncident() {
	var in services.IncidentInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	incident, err := c.service().CreateIncident(c.Ctx.Request.Context(), actorID(c.Ctx), in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error creating incident")
		return
	}
	response.Success(c.Ctx, "Incident created successfully", gin.H{
		"incident":   incident,
		"incidentId": incident.ID,
	})
}

// UpdateIncident rewrites an incident
func (c *IncidentController) UpdateIncident() {
	id, ok := paramID(c.Ctx, "id", "incident")
	if !ok {
		return
	}
	var in services.IncidentInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	incident, err := c.service().UpdateIncident(c.Ctx.Request.Context(), actorID(c.Ctx), id, in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error updating incident")
		return
	}
	response.Success(c.Ctx, "Incident updated successfully", gin.H{"incident": incident})
}

// DeleteIncident removes an incident
func (c *IncidentController) DeleteIncident() {
	id, ok := paramID(c.Ctx, "id", "incident")
	if !ok {
		return
	}
	if err := c.service().DeleteIncident(c.Ctx.Request.Context(), actorID(c.Ctx), id); err != nil {
		response.Error(c.Ctx, err, "Server error deleting incident")
		return
	}
	response.Success(c.Ctx, "Incident deleted successfully", nil)
}

// CountIncidents returns the number of incidents
func (c *IncidentController) CountIncidents() {
	count, err := c.service().CountIncidents(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching incidents count")
		return
	}
	response.Success(c.Ctx, "", gin.H{"count": count})
}

// NextReference reserves and returns a fresh reference number
func (c *IncidentController) NextReference() {
	ref, err := c.service().GenerateReferenceNumber(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error generating reference number")
		return
	}
	response.Success(c.Ctx, "", gin.H{"reference_number": ref})
}

// HandleIncidentFunc returns a gin handler for the incident controller
func HandleIncidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewIncidentController(ctx, container)

		switch method {
		case "getIncidents":
			controller.GetIncidents()
		case "getIncident":
			controller.GetIncident()
		case "createIncident":
			controller.CreateIncident()
		case "updateIncident":
			controller.UpdateIncident()
		case "deleteIncident":
			controller.DeleteIncident()
		case "countIncidents":
			controller.CountIncidents()
		case "nextReference":
			controller.NextReference()
		default:
			unknownMethod(ctx)
		}
	}
}
