package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/application/stock"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// StockHandler handles ledger adjustments, imports and reporting
type StockHandler struct {
	BaseHandler
	ledgerService *stock.LedgerService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(ledgerService *stock.LedgerService) *StockHandler {
	return &StockHandler{ledgerService: ledgerService}
}

// AdjustRequest is the payload for a manual ledger adjustment
type AdjustRequest struct {
	SkuID      string          `json:"sku_id" binding:"required,uuid"`
	LocationID string          `json:"location_id" binding:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Forced     bool            `json:"forced"`
	Reason     string          `json:"reason"`
}

// ResetRowRequest is one row of a reset-to-quantity import
type ResetRowRequest struct {
	SkuCode      string          `json:"sku_code" binding:"required"`
	MakerCode    string          `json:"maker_code"`
	Name         string          `json:"name"`
	LocationCode string          `json:"location_code" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ImportRequest is the payload for a bulk reset import
type ImportRequest struct {
	StoreCode string            `json:"store_code" binding:"required"`
	Rows      []ResetRowRequest `json:"rows" binding:"required,min=1"`
}

// OnHandRequest selects a (sku, location) pair for the on-hand query
type OnHandRequest struct {
	SkuID         string `form:"sku_id" binding:"required,uuid"`
	LocationID    string `form:"location_id" binding:"required,uuid"`
	IncludeForced bool   `form:"include_forced"`
}

// Adjust handles POST /api/v1/stock/adjustments
func (h *StockHandler) Adjust(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	skuID := uuid.MustParse(req.SkuID)
	locationID := uuid.MustParse(req.LocationID)

	entry, err := h.ledgerService.Append(c.Request.Context(), stock.AppendInput{
		SkuID:      skuID,
		LocationID: locationID,
		Quantity:   req.Quantity,
		Type:       ledger.EntryTypeAdjust,
		Forced:     req.Forced,
		Reason:     req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, stock.NewEntryResponse(entry))
}

// Import handles POST /api/v1/stock/imports
func (h *StockHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows := make([]stock.ResetRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, stock.ResetRow{
			SkuCode:      row.SkuCode,
			MakerCode:    row.MakerCode,
			Name:         row.Name,
			LocationCode: row.LocationCode,
			Quantity:     row.Quantity,
		})
	}

	report, err := h.ledgerService.ImportRows(c.Request.Context(), req.StoreCode, rows)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// OnHand handles GET /api/v1/stock/on-hand
func (h *StockHandler) OnHand(c *gin.Context) {
	var req OnHandRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	skuID := uuid.MustParse(req.SkuID)
	locationID := uuid.MustParse(req.LocationID)

	onHand, err := h.ledgerService.OnHand(c.Request.Context(), skuID, locationID, req.IncludeForced)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"sku_id":         req.SkuID,
		"location_id":    req.LocationID,
		"on_hand":        onHand.String(),
		"include_forced": req.IncludeForced,
	})
}

// Report handles GET /api/v1/stock/report
func (h *StockHandler) Report(c *gin.Context) {
	storeCode := c.Query("store_code")
	if storeCode == "" {
		h.BadRequest(c, "store_code is required")
		return
	}

	rows, err := h.ledgerService.OnHandReport(c.Request.Context(), storeCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ForcedEntries handles GET /api/v1/stock/forced
func (h *StockHandler) ForcedEntries(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.ledgerService.ForcedEntries(c.Request.Context(), listRequestToFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Entries handles GET /api/v1/stock/entries
func (h *StockHandler) Entries(c *gin.Context) {
	var req OnHandRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	skuID := uuid.MustParse(req.SkuID)
	locationID := uuid.MustParse(req.LocationID)

	entries, err := h.ledgerService.EntriesFor(c.Request.Context(), skuID, locationID, listRequestToFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
