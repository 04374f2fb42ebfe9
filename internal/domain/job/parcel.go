package job

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Parcel carries the shipment details of a job: recipient address plus, once
// a carrier reservation is confirmed, the carrier code and waybill number.
type Parcel struct {
	shared.BaseEntity
	JobID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Recipient      string    `gorm:"type:varchar(100);not null"`
	Phone          string    `gorm:"type:varchar(50)"`
	PostalCode     string    `gorm:"type:varchar(20)"`
	Address        string    `gorm:"type:text"`
	CarrierCode    string    `gorm:"type:varchar(32)"`
	TrackingNumber string    `gorm:"type:varchar(64);index"`
}

// TableName returns the table name for GORM
func (Parcel) TableName() string {
	return "job_parcels"
}

func newParcel(jobID uuid.UUID) *Parcel {
	return &Parcel{
		BaseEntity: shared.NewBaseEntity(),
		JobID:      jobID,
	}
}

func (p *Parcel) updateAddress(recipient, phone, postalCode, address string) {
	p.Recipient = strings.TrimSpace(recipient)
	p.Phone = strings.TrimSpace(phone)
	p.PostalCode = strings.TrimSpace(postalCode)
	p.Address = strings.TrimSpace(address)
	p.UpdatedAt = time.Now()
}

// SetTracking stamps the carrier code and waybill number after a confirmed
// reservation
func (p *Parcel) SetTracking(carrierCode, trackingNumber string) {
	p.CarrierCode = carrierCode
	p.TrackingNumber = trackingNumber
	p.UpdatedAt = time.Now()
}

// ClearTracking removes the carrier assignment after a cancelled reservation
func (p *Parcel) ClearTracking() {
	p.CarrierCode = ""
	p.TrackingNumber = ""
	p.UpdatedAt = time.Now()
}

// HasTracking reports whether a waybill is assigned
func (p *Parcel) HasTracking() bool {
	return p.TrackingNumber != ""
}
