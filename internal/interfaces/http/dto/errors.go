package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientStock is used when the stock guard rejects a scan
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeNeedForceOut is used when no stocked location can serve a pick
	ErrCodeNeedForceOut = "ERR_NEED_FORCE_OUT"
	// ErrCodeNotInJob is used when a scanned SKU has no open line on the job
	ErrCodeNotInJob = "ERR_NOT_IN_JOB"
	// ErrCodeAmbiguousMatch is used when a barcode matches more than one SKU
	ErrCodeAmbiguousMatch = "ERR_AMBIGUOUS_MATCH"
	// ErrCodeAlreadyReserved is used when the job already has a confirmed waybill
	ErrCodeAlreadyReserved = "ERR_ALREADY_RESERVED"
	// ErrCodeReservationInProgress is used when a concurrent reservation holds the job
	ErrCodeReservationInProgress = "ERR_RESERVATION_IN_PROGRESS"
	// ErrCodeProtectedLocation is used when a system-reserved slot is modified
	ErrCodeProtectedLocation = "ERR_PROTECTED_LOCATION"
	// ErrCodeOverReceive is used when receiving would exceed the plan without confirmation
	ErrCodeOverReceive = "ERR_OVER_RECEIVE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule rejections carry enough detail for the operator UI to
	// offer the matching confirmation, so they are 422 rather than 400.
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeNeedForceOut:      http.StatusUnprocessableEntity,
	ErrCodeNotInJob:          http.StatusUnprocessableEntity,
	ErrCodeOverReceive:       http.StatusUnprocessableEntity,
	ErrCodeAmbiguousMatch:    http.StatusConflict,
	ErrCodeProtectedLocation: http.StatusUnprocessableEntity,

	// Reservation races are conflicts; the winner holds the job.
	ErrCodeAlreadyReserved:       http.StatusConflict,
	ErrCodeReservationInProgress: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to the API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_STATE":           ErrCodeInvalidState,
	"INVALID_DELTA":           ErrCodeInvalidInput,
	"INVALID_QUANTITY":        ErrCodeInvalidInput,
	"INVALID_SCAN_VALUE":      ErrCodeInvalidInput,
	"INVALID_LOCATION_CODE":   ErrCodeInvalidInput,
	"INVALID_STORE_CODE":      ErrCodeInvalidInput,
	"INVALID_REASON":          ErrCodeInvalidInput,
	"INVALID_RECIPIENT":       ErrCodeInvalidInput,
	"INSUFFICIENT_STOCK":      ErrCodeInsufficientStock,
	"NEED_FORCE_OUT":          ErrCodeNeedForceOut,
	"NOT_IN_JOB":              ErrCodeNotInJob,
	"AMBIGUOUS_MATCH":         ErrCodeAmbiguousMatch,
	"ALREADY_RESERVED":        ErrCodeAlreadyReserved,
	"RESERVATION_IN_PROGRESS": ErrCodeReservationInProgress,
	"PROTECTED_LOCATION":      ErrCodeProtectedLocation,
	"OVER_RECEIVE":            ErrCodeOverReceive,
	"JOB_NOT_DONE":            ErrCodeInvalidState,
	"PARCEL_MISSING":          ErrCodeInvalidState,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes pass through as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
