package picking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/application/resolve"
	"github.com/stouper/wms-sub002/internal/domain/catalog"
	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// CreateJobInput describes a new picking or receiving job
type CreateJobInput struct {
	StoreCode string
	Title     string
	Memo      string
	Items     []PlanLineInput
}

// PlanLineInput is one planned SKU line. The value goes through the resolver,
// so barcodes, canonical codes and brand-new codes all work.
type PlanLineInput struct {
	Value     string
	MakerCode string
	Name      string
	Quantity  decimal.Decimal
}

// ParcelInput carries shipment address details for a job
type ParcelInput struct {
	Recipient  string
	Phone      string
	PostalCode string
	Address    string
}

// ItemResponse is one planned line in a job snapshot
type ItemResponse struct {
	ID        string          `json:"id"`
	SkuID     string          `json:"sku_id"`
	SkuCode   string          `json:"sku_code"`
	MakerCode string          `json:"maker_code,omitempty"`
	Name      string          `json:"name,omitempty"`
	Planned   decimal.Decimal `json:"planned"`
	Picked    decimal.Decimal `json:"picked"`
	Remaining decimal.Decimal `json:"remaining"`
}

// ParcelResponse is the shipment block of a job snapshot
type ParcelResponse struct {
	Recipient      string `json:"recipient"`
	Phone          string `json:"phone,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	Address        string `json:"address,omitempty"`
	CarrierCode    string `json:"carrier_code,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// JobResponse is the full API snapshot of a job
type JobResponse struct {
	ID            string          `json:"id"`
	StoreCode     string          `json:"store_code"`
	Status        string          `json:"status"`
	AllowOverpick bool            `json:"allow_overpick"`
	Title         string          `json:"title,omitempty"`
	Memo          string          `json:"memo,omitempty"`
	DoneAt        *time.Time      `json:"done_at,omitempty"`
	Items         []ItemResponse  `json:"items"`
	Parcel        *ParcelResponse `json:"parcel,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// JobService manages the job lifecycle around the scan protocol: planning,
// the overpick toggle and parcel details.
type JobService struct {
	jobRepo      job.Repository
	skuRepo      catalog.SkuRepository
	locationRepo warehouse.LocationRepository
	resolver     *resolve.ResolverService
}

// NewJobService creates a new JobService
func NewJobService(jobRepo job.Repository, skuRepo catalog.SkuRepository, locationRepo warehouse.LocationRepository, resolver *resolve.ResolverService) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		skuRepo:      skuRepo,
		locationRepo: locationRepo,
		resolver:     resolver,
	}
}

// CreateJob creates an open job, resolving and planning its lines. Unknown
// canonical codes are minted on the spot so a job can be planned ahead of the
// first import.
func (s *JobService) CreateJob(ctx context.Context, input CreateJobInput) (*JobResponse, error) {
	j, err := job.NewJob(input.StoreCode, input.Title, input.Memo)
	if err != nil {
		return nil, err
	}

	for _, line := range input.Items {
		sku, err := s.resolver.ResolveSku(ctx, resolve.SkuInput{
			Value:       line.Value,
			MakerCode:   line.MakerCode,
			Name:        line.Name,
			AllowCreate: true,
		})
		if err != nil {
			return nil, err
		}
		if _, err := j.AddItem(sku.ID, line.Quantity); err != nil {
			return nil, err
		}
	}

	// A job may be the first thing that mentions a store, so the reserved
	// slots (RETURN, UNASSIGNED, ...) are seeded here before receiving or
	// forced picks can need them.
	if _, err := warehouse.EnsureReservedLocations(ctx, s.locationRepo, j.StoreCode); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Save(ctx, j); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, j)
}

// GetJob returns the job snapshot
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*JobResponse, error) {
	j, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, j)
}

// ListJobs returns job snapshots with the total count for pagination
func (s *JobService) ListJobs(ctx context.Context, filter shared.Filter) ([]*JobResponse, int64, error) {
	jobs, err := s.jobRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*JobResponse, 0, len(jobs))
	for i := range jobs {
		resp, err := s.toResponse(ctx, &jobs[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, resp)
	}
	return out, total, nil
}

// AddItems plans additional lines on an open job
func (s *JobService) AddItems(ctx context.Context, id uuid.UUID, lines []PlanLineInput) (*JobResponse, error) {
	j, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		sku, err := s.resolver.ResolveSku(ctx, resolve.SkuInput{
			Value:       line.Value,
			MakerCode:   line.MakerCode,
			Name:        line.Name,
			AllowCreate: true,
		})
		if err != nil {
			return nil, err
		}
		if _, err := j.AddItem(sku.ID, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.jobRepo.Save(ctx, j); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, j)
}

// SetAllowOverpick toggles the job's standing overpick permission
func (s *JobService) SetAllowOverpick(ctx context.Context, id uuid.UUID, allow bool) (*JobResponse, error) {
	j, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	j.SetAllowOverpick(allow)
	if err := s.jobRepo.Save(ctx, j); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, j)
}

// AttachParcel sets or replaces the job's shipment details
func (s *JobService) AttachParcel(ctx context.Context, id uuid.UUID, input ParcelInput) (*JobResponse, error) {
	j, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parcel, err := j.AttachParcel(input.Recipient, input.Phone, input.PostalCode, input.Address)
	if err != nil {
		return nil, err
	}
	if err := s.jobRepo.SaveParcel(ctx, parcel); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(ctx, j); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, j)
}

func (s *JobService) toResponse(ctx context.Context, j *job.Job) (*JobResponse, error) {
	resp := &JobResponse{
		ID:            j.ID.String(),
		StoreCode:     j.StoreCode,
		Status:        string(j.Status),
		AllowOverpick: j.AllowOverpick,
		Title:         j.Title,
		Memo:          j.Memo,
		DoneAt:        j.DoneAt,
		Items:         make([]ItemResponse, 0, len(j.Items)),
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}

	for idx := range j.Items {
		item := &j.Items[idx]
		line := ItemResponse{
			ID:        item.ID.String(),
			SkuID:     item.SkuID.String(),
			Planned:   item.QuantityPlanned,
			Picked:    item.QuantityPicked,
			Remaining: item.Remaining(),
		}
		sku, err := s.skuRepo.FindByID(ctx, item.SkuID)
		if err == nil {
			line.SkuCode = sku.Code
			line.MakerCode = sku.MakerCode
			line.Name = sku.Name
		}
		resp.Items = append(resp.Items, line)
	}

	if j.Parcel != nil {
		resp.Parcel = &ParcelResponse{
			Recipient:      j.Parcel.Recipient,
			Phone:          j.Parcel.Phone,
			PostalCode:     j.Parcel.PostalCode,
			Address:        j.Parcel.Address,
			CarrierCode:    j.Parcel.CarrierCode,
			TrackingNumber: j.Parcel.TrackingNumber,
		}
	}
	return resp, nil
}
