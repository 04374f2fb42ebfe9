package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stouper/wms-sub002/internal/application/shipping"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// ShippingHandler handles carrier reservation requests
type ShippingHandler struct {
	BaseHandler
	reservationService *shipping.ReservationService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(reservationService *shipping.ReservationService) *ShippingHandler {
	return &ShippingHandler{reservationService: reservationService}
}

// Reserve handles POST /api/v1/jobs/:id/reservation
func (h *ShippingHandler) Reserve(c *gin.Context) {
	jobID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.reservationService.Reserve(c.Request.Context(), jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Cancel handles DELETE /api/v1/jobs/:id/reservation
func (h *ShippingHandler) Cancel(c *gin.Context) {
	jobID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.reservationService.Cancel(c.Request.Context(), jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /api/v1/jobs/:id/reservation
func (h *ShippingHandler) Get(c *gin.Context) {
	jobID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.reservationService.GetByJob(c.Request.Context(), jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ShippingHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return uuid.Nil, false
	}
	return id, true
}
