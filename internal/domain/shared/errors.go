package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound              = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists         = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput          = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState          = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidDelta          = NewDomainError("INVALID_DELTA", "Ledger delta must be a non-zero quantity")
	ErrInsufficientStock     = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrNeedForceOut          = NewDomainError("NEED_FORCE_OUT", "No stocked location available; force out against the unassigned slot")
	ErrNotInJob              = NewDomainError("NOT_IN_JOB", "Scanned item has no open line on this job")
	ErrAmbiguousMatch        = NewDomainError("AMBIGUOUS_MATCH", "More than one item matches the scanned code")
	ErrAlreadyReserved       = NewDomainError("ALREADY_RESERVED", "A confirmed reservation already exists for this job")
	ErrReservationInProgress = NewDomainError("RESERVATION_IN_PROGRESS", "Another reservation request is in flight for this job")
	ErrProtectedLocation     = NewDomainError("PROTECTED_LOCATION", "System-reserved locations cannot be modified")
	ErrOverReceive           = NewDomainError("OVER_RECEIVE", "Received quantity would exceed the planned quantity; confirmation required")
)
