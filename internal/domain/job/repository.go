package job

import (
	"context"

	"github.com/google/uuid"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Repository provides persistence for the Job aggregate, items and parcel
// included
type Repository interface {
	// FindByID loads a job with its items and parcel.
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Job, error)
	Save(ctx context.Context, j *Job) error
	// SaveItem persists a single changed line without rewriting siblings.
	SaveItem(ctx context.Context, item *Item) error
	SaveParcel(ctx context.Context, parcel *Parcel) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
