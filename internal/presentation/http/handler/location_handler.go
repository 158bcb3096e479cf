package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/request"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
)

// LocationHandler handles store branch HTTP requests
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// List handles listing store branches
func (h *LocationHandler) List(c *gin.Context) {
	result, err := h.locationService.ListLocations(c.Request.Context(), bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Locations retrieved successfully", result)
}

// Get handles retrieving a store branch
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid location ID")
		return
	}

	location, err := h.locationService.GetLocation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Location retrieved successfully", location)
}

// Create handles opening a store branch
func (h *LocationHandler) Create(c *gin.Context) {
	var req request.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), &service.LocationInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Location created successfully", location)
}

// Update handles updating a store branch
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid location ID")
		return
	}

	var req request.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), id, &service.LocationInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Location updated successfully", location)
}

// Deactivate handles closing a store branch
func (h *LocationHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.locationService.DeactivateLocation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Location deactivated successfully", nil)
}
