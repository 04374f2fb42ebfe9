package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/domain/ledger"
)

// AppendInput describes one manual ledger append (adjustment, inbound or
// outbound correction)
type AppendInput struct {
	SkuID      uuid.UUID
	LocationID uuid.UUID
	Quantity   decimal.Decimal // signed delta
	Type       ledger.EntryType
	Forced     bool
	Reason     string
	JobID      *uuid.UUID
	JobItemID  *uuid.UUID
}

// ResetRow is one row of a bulk "reset to absolute quantity" import
type ResetRow struct {
	SkuCode      string
	MakerCode    string
	Name         string
	LocationCode string
	Quantity     decimal.Decimal // target absolute on-hand
}

// ResetResult describes how one reset row was applied
type ResetResult struct {
	SkuCode      string          `json:"sku_code"`
	LocationCode string          `json:"location_code"`
	Before       decimal.Decimal `json:"before"`
	After        decimal.Decimal `json:"after"`
	Delta        decimal.Decimal `json:"delta"`
	Skipped      bool            `json:"skipped"` // target already matched on-hand
}

// RowError pairs a failed import row with its error
type RowError struct {
	Row     int    `json:"row"`
	SkuCode string `json:"sku_code"`
	Message string `json:"message"`
}

// ImportReport summarizes a bulk reset import
type ImportReport struct {
	Applied int           `json:"applied"`
	Skipped int           `json:"skipped"`
	Failed  []RowError    `json:"failed,omitempty"`
	Results []ResetResult `json:"results"`
}

// EntryResponse is the API representation of a ledger entry
type EntryResponse struct {
	ID            string    `json:"id"`
	SkuID         string    `json:"sku_id"`
	LocationID    string    `json:"location_id"`
	Quantity      string    `json:"quantity"`
	Type          string    `json:"type"`
	Forced        bool      `json:"forced"`
	ForcedReason  *string   `json:"forced_reason,omitempty"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	JobID         *string   `json:"job_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEntryResponse maps a ledger entry to its API representation
func NewEntryResponse(e *ledger.Entry) *EntryResponse {
	resp := &EntryResponse{
		ID:            e.ID.String(),
		SkuID:         e.SkuID.String(),
		LocationID:    e.LocationID.String(),
		Quantity:      e.Quantity.String(),
		Type:          e.Type.String(),
		Forced:        e.Forced,
		ForcedReason:  e.ForcedReason,
		BalanceBefore: e.BalanceBefore.String(),
		BalanceAfter:  e.BalanceAfter().String(),
		CreatedAt:     e.CreatedAt,
	}
	if e.JobID != nil {
		id := e.JobID.String()
		resp.JobID = &id
	}
	return resp
}

// OnHandRowResponse is one line of the on-hand report
type OnHandRowResponse struct {
	SkuCode      string `json:"sku_code"`
	MakerCode    string `json:"maker_code,omitempty"`
	Name         string `json:"name,omitempty"`
	LocationCode string `json:"location_code"`
	OnHand       string `json:"on_hand"`
}
