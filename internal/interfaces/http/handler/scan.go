package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/application/picking"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// ScanHandler handles pick and receive scans against a job
type ScanHandler struct {
	BaseHandler
	scanService *picking.ScanService
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanService *picking.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// ScanRequest is the payload for an outbound pick scan
type ScanRequest struct {
	Value        string          `json:"value" binding:"required"`
	MakerCode    string          `json:"maker_code"`
	Name         string          `json:"name"`
	LocationCode string          `json:"location_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	Force        bool            `json:"force"`
	Reason       string          `json:"reason"`
}

// ReceiveRequest is the payload for an inbound receiving scan
type ReceiveRequest struct {
	Value              string          `json:"value" binding:"required"`
	MakerCode          string          `json:"maker_code"`
	Name               string          `json:"name"`
	LocationCode       string          `json:"location_code" binding:"required"`
	Quantity           decimal.Decimal `json:"quantity"`
	ConfirmOverReceive bool            `json:"confirm_over_receive"`
}

// Scan handles POST /api/v1/jobs/:id/scans
func (h *ScanHandler) Scan(c *gin.Context) {
	jobID, ok := h.pathJobID(c)
	if !ok {
		return
	}
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), picking.ScanInput{
		JobID:        jobID,
		Value:        req.Value,
		MakerCode:    req.MakerCode,
		Name:         req.Name,
		LocationCode: req.LocationCode,
		Quantity:     req.Quantity,
		Force:        req.Force,
		Reason:       req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Receive handles POST /api/v1/jobs/:id/receipts
func (h *ScanHandler) Receive(c *gin.Context) {
	jobID, ok := h.pathJobID(c)
	if !ok {
		return
	}
	var req ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.scanService.Receive(c.Request.Context(), picking.ReceiveInput{
		JobID:              jobID,
		Value:              req.Value,
		MakerCode:          req.MakerCode,
		Name:               req.Name,
		LocationCode:       req.LocationCode,
		Quantity:           req.Quantity,
		ConfirmOverReceive: req.ConfirmOverReceive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *ScanHandler) pathJobID(c *gin.Context) (uuid.UUID, bool) {
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
