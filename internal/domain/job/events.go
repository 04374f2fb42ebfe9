package job

import (
	"time"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Event types for the job context
const (
	EventTypeJobDone = "job.done"
)

// JobDoneEvent is emitted when the last open line of a job is satisfied
type JobDoneEvent struct {
	shared.BaseDomainEvent
	StoreCode string    `json:"store_code"`
	DoneAt    time.Time `json:"done_at"`
}

// NewJobDoneEvent creates a JobDoneEvent
func NewJobDoneEvent(j *Job) *JobDoneEvent {
	doneAt := time.Now()
	if j.DoneAt != nil {
		doneAt = *j.DoneAt
	}
	return &JobDoneEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobDone, "Job", j.ID),
		StoreCode:       j.StoreCode,
		DoneAt:          doneAt,
	}
}
