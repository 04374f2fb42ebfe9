package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/stouper/wms-sub002/internal/application/catalog"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// SkuHandler handles catalog management requests
type SkuHandler struct {
	BaseHandler
	skuService *appcatalog.SkuService
}

// NewSkuHandler creates a new SkuHandler
func NewSkuHandler(skuService *appcatalog.SkuService) *SkuHandler {
	return &SkuHandler{skuService: skuService}
}

// CreateSkuRequest is the payload for creating a SKU
type CreateSkuRequest struct {
	Code      string `json:"code" binding:"required"`
	MakerCode string `json:"maker_code"`
	Name      string `json:"name"`
}

// Create handles POST /api/v1/skus
func (h *SkuHandler) Create(c *gin.Context) {
	var req CreateSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.skuService.Create(c.Request.Context(), req.Code, req.MakerCode, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/skus/:id
func (h *SkuHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid SKU ID")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid SKU ID")
		return
	}

	resp, err := h.skuService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/skus
func (h *SkuHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	skus, total, err := h.skuService.List(c.Request.Context(), listRequestToFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, skus, total, req.Page, req.PageSize)
}
