package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appwarehouse "github.com/stouper/wms-sub002/internal/application/warehouse"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// LocationHandler handles storage slot management requests
type LocationHandler struct {
	BaseHandler
	locationService *appwarehouse.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *appwarehouse.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CreateLocationRequest is the payload for creating a location
type CreateLocationRequest struct {
	StoreCode string `json:"store_code" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name"`
}

// RenameLocationRequest is the payload for renaming a location
type RenameLocationRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/v1/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.locationService.Create(c.Request.Context(), req.StoreCode, req.Code, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.locationService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/locations
func (h *LocationHandler) List(c *gin.Context) {
	storeCode := c.Query("store_code")
	if storeCode == "" {
		h.BadRequest(c, "store_code is required")
		return
	}
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	locations, total, err := h.locationService.List(c.Request.Context(), storeCode, listRequestToFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, locations, total, req.Page, req.PageSize)
}

// Rename handles PUT /api/v1/locations/:id
func (h *LocationHandler) Rename(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req RenameLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.locationService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *LocationHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid location ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return uuid.Nil, false
	}
	return id, true
}
