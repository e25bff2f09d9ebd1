package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// PersonalisationController handles branding and carousel requests
type PersonalisationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// CarouselPositionRequest moves a carousel image
type CarouselPositionRequest struct {
	Position int `json:"position" binding:"required,min=1"`
}

// NewPersonalisationController creates a personalisation controller
func NewPersonalisationController(ctx *gin.Context, container *container.ServiceContainer) *PersonalisationController {
	return &PersonalisationController{Ctx: ctx, Container: container}
}

func (c *PersonalisationController) branding() services.InterfacePersonalisationService {
	return c.Container.GetService("personalisation").(services.InterfacePersonalisationService)
}

func (c *PersonalisationController) carousel() services.InterfaceCarouselService {
	return c.Container.GetService("carousel").(services.InterfaceCarouselService)
}

// formFile returns the named upload, or nil when it is absent
func (c *PersonalisationController) formFile(name string) (*multipart.FileHeader, bool) {
	fh, err := c.Ctx.FormFile(name)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.ParamError(c.Ctx, "Invalid upload")
		return nil, false
	}
	return fh, true
}

// GetPersonalisation returns the branding settings
func (c *PersonalisationController) GetPersonalisation() {
	p, err := c.branding().GetPersonalisation(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching personalisation")
		return
	}
	response.Success(c.Ctx, "", gin.H{"personalisation": p})
}

// UpdatePersonalisation changes titles and colours
func (c *PersonalisationController) UpdatePersonalisation() {
	var in services.PersonalisationUpdate
	if !bindJSON(c.Ctx, &in) {
		return
	}
	p, err := c.branding().UpdatePersonalisation(c.Ctx.Request.Context(), in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error updating personalisation")
		return
	}
	response.Success(c.Ctx, "Personalisation updated successfully", gin.H{"personalisation": p})
}

// UploadLogo replaces the logo
func (c *PersonalisationController) UploadLogo() {
	fh, ok := c.formFile("logo")
	if !ok {
		return
	}
	p, err := c.branding().UploadLogo(c.Ctx.Request.Context(), fh)
	if err != nil {
		response.Error(c.Ctx, err, "Server error uploading logo")
		return
	}
	response.Success(c.Ctx, "Logo uploaded successfully", gin.H{"personalisation": p})
}

// UploadMainBg replaces the main background
func (c *PersonalisationController) UploadMainBg() {
	fh, ok := c.formFile("main_bg")
	if !ok {
		return
	}
	p, err := c.branding().UploadMainBg(c.Ctx.Request.Context(), fh)
	if err != nil {
		response.Error(c.Ctx, err, "Server error uploading main background")
		return
	}
	response.Success(c.Ctx, "Main background uploaded successfully", gin.H{"personalisation": p})
}

// GetCarousel lists carousel images
func (c *PersonalisationController) GetCarousel() {
	images, err := c.carousel().GetCarousel(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching carousel")
		return
	}
	response.Success(c.Ctx, "", gin.H{"carousel": images})
}

// AddCarouselImage uploads a carousel image at an optional position
func (c *PersonalisationController) AddCarouselImage() {
	fh, ok := c.formFile("carousel")
	if !ok {
		return
	}
	position := 0
	if raw := strings.TrimSpace(c.Ctx.PostForm("position")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			response.ParamError(c.Ctx, "Invalid position")
			return
		}
		position = p
	}

	image, err := c.carousel().AddImage(c.Ctx.Request.Context(), fh, position)
	if err != nil {
		response.Error(c.Ctx, err, "Server error adding carousel image")
		return
	}
	response.Success(c.Ctx, "Carousel image added successfully", gin.H{"carousel": image})
}

// UpdateCarouselPosition moves a carousel image
func (c *PersonalisationController) UpdateCarouselPosition() {
	id, ok := paramID(c.Ctx, "id", "carousel")
	if !ok {
		return
	}
	var req CarouselPositionRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	if err := c.carousel().UpdatePosition(c.Ctx.Request.Context(), id, req.Position); err != nil {
		response.Error(c.Ctx, err, "Server error updating carousel position")
		return
	}
	response.Success(c.Ctx, "Carousel position updated successfully", nil)
}

// DeleteCarouselImage removes a carousel image
func (c *PersonalisationController) DeleteCarouselImage() {
	id, ok := paramID(c.Ctx, "id", "carousel")
	if !ok {
		return
	}
	if err := c.carousel().DeleteImage(c.Ctx.Request.Context(), id); err != nil {
		response.Error(c.Ctx, err, "Server error deleting carousel image")
		return
	}
	response.Success(c.Ctx, "Carousel image deleted successfully", nil)
}

// HandlePersonalisationFunc returns a gin handler for the personalisation controller
func HandlePersonalisationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPersonalisationController(ctx, container)

		switch method {
		case "getPersonalisation":
			controller.GetPersonalisation()
		case "updatePersonalisation":
			controller.UpdatePersonalisation()
		case "uploadLogo":
			controller.UploadLogo()
		case "uploadMainBg":
			controller.UploadMainBg()
		case "getCarousel":
			controller.GetCarousel()
		case "addCarouselImage":
			controller.AddCarouselImage()
		case "updateCarouselPosition":
			controller.UpdateCarouselPosition()
		case "deleteCarouselImage":
			controller.DeleteCarouselImage()
		default:
			unknownMethod(ctx)
		}
	}
}
