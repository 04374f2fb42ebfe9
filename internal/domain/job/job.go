package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Status represents the lifecycle state of a job
type Status string

const (
	// StatusOpen means picking is still in progress
	StatusOpen Status = "open"
	// StatusDone means every line's picked quantity covers its plan
	StatusDone Status = "done"
)

// Job is a planned unit of picking or receiving work against one destination
// store. It owns its items and parcel; quantity truth lives in the ledger.
type Job struct {
	shared.BaseAggregateRoot
	StoreCode     string     `gorm:"type:varchar(32);not null;index"`
	Status        Status     `gorm:"type:varchar(16);not null;default:'open';index"`
	AllowOverpick bool       `gorm:"not null;default:false"`
	Title         string     `gorm:"type:varchar(200)"`
	Memo          string     `gorm:"type:text"`
	DoneAt        *time.Time

	Items  []Item  `gorm:"foreignKey:JobID;references:ID"`
	Parcel *Parcel `gorm:"foreignKey:JobID;references:ID"`
}

// TableName returns the table name for GORM
func (Job) TableName() string {
	return "jobs"
}

// NewJob creates an open job for a destination store
func NewJob(storeCode, title, memo string) (*Job, error) {
	storeCode = strings.ToUpper(strings.TrimSpace(storeCode))
	if storeCode == "" {
		return nil, shared.NewDomainError("INVALID_STORE_CODE", "Destination store code cannot be empty")
	}

	j := &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreCode:         storeCode,
		Status:            StatusOpen,
		Title:             strings.TrimSpace(title),
		Memo:              strings.TrimSpace(memo),
		Items:             make([]Item, 0),
	}
	return j, nil
}

// IsOpen reports whether the job still accepts scans
func (j *Job) IsOpen() bool {
	return j.Status == StatusOpen
}

// SetAllowOverpick toggles the standing overpick permission for this job
func (j *Job) SetAllowOverpick(allow bool) {
	j.AllowOverpick = allow
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
}

// AddItem plans quantity of a SKU. Adding a SKU that is already planned
// increments the existing line instead of creating a duplicate.
func (j *Job) AddItem(skuID uuid.UUID, quantity decimal.Decimal) (*Item, error) {
	if !j.IsOpen() {
		return nil, shared.ErrInvalidState
	}
	if skuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Planned quantity must be positive")
	}

	for idx := range j.Items {
		if j.Items[idx].SkuID == skuID {
			j.Items[idx].addPlanned(quantity)
			j.UpdatedAt = time.Now()
			j.IncrementVersion()
			return &j.Items[idx], nil
		}
	}

	item := newItem(j.ID, skuID, quantity)
	j.Items = append(j.Items, *item)
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return &j.Items[len(j.Items)-1], nil
}

// OpenItemForSku returns the job's line for the SKU when it still has
// remaining quantity to pick. Scanning a SKU with no open line is NotInJob.
func (j *Job) OpenItemForSku(skuID uuid.UUID) (*Item, error) {
	for idx := range j.Items {
		if j.Items[idx].SkuID == skuID && j.Items[idx].Remaining().IsPositive() {
			return &j.Items[idx], nil
		}
	}
	return nil, &NotInJobError{JobID: j.ID, SkuID: skuID}
}

// ItemForSku returns the job's line for the SKU regardless of remaining
// quantity, for receiving and overpick paths.
func (j *Job) ItemForSku(skuID uuid.UUID) (*Item, error) {
	for idx := range j.Items {
		if j.Items[idx].SkuID == skuID {
			return &j.Items[idx], nil
		}
	}
	return nil, &NotInJobError{JobID: j.ID, SkuID: skuID}
}

// RecordPick increments the line's picked quantity and transitions the job
// to done when every line is satisfied. Returns true when the job completed
// with this pick.
func (j *Job) RecordPick(item *Item, quantity decimal.Decimal) (bool, error) {
	if !j.IsOpen() {
		return false, shared.ErrInvalidState
	}
	if err := item.recordPicked(quantity); err != nil {
		return false, err
	}
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	if j.allSatisfied() {
		j.markDone()
		return true, nil
	}
	return false, nil
}

func (j *Job) allSatisfied() bool {
	for idx := range j.Items {
		if j.Items[idx].QuantityPicked.LessThan(j.Items[idx].QuantityPlanned) {
			return false
		}
	}
	return len(j.Items) > 0
}

func (j *Job) markDone() {
	now := time.Now()
	j.Status = StatusDone
	j.DoneAt = &now
	j.AddDomainEvent(NewJobDoneEvent(j))
}

// AttachParcel sets or replaces the job's parcel details. A job carries at
// most one parcel.
func (j *Job) AttachParcel(recipient, phone, postalCode, address string) (*Parcel, error) {
	if strings.TrimSpace(recipient) == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Parcel recipient cannot be empty")
	}

	if j.Parcel == nil {
		j.Parcel = newParcel(j.ID)
	}
	j.Parcel.updateAddress(recipient, phone, postalCode, address)
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return j.Parcel, nil
}

// NotInJobError reports a scan whose SKU has no open line on the job.
// It unwraps to shared.ErrNotInJob.
type NotInJobError struct {
	JobID uuid.UUID
	SkuID uuid.UUID
}

// Error implements the error interface
func (e *NotInJobError) Error() string {
	return "sku " + e.SkuID.String() + " has no open line on job " + e.JobID.String()
}

// Unwrap makes errors.Is(err, shared.ErrNotInJob) hold
func (e *NotInJobError) Unwrap() error {
	return shared.ErrNotInJob
}
