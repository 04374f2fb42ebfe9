package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stouper/wms-sub002/internal/application/picking"
	"github.com/stouper/wms-sub002/internal/application/resolve"
	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts application and domain errors to HTTP responses.
// Typed errors carry their structured detail into the response so an
// operator UI can build the matching confirmation dialog.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	if details, code, message, ok := extractErrorDetails(err); ok {
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithDetails(code, message, requestID, details))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// extractErrorDetails pulls structured fields out of the typed guard errors
func extractErrorDetails(err error) (map[string]interface{}, string, string, bool) {
	var stockErr *ledger.InsufficientStockError
	if errors.As(err, &stockErr) {
		return map[string]interface{}{
			"sku_id":      stockErr.SkuID.String(),
			"location_id": stockErr.LocationID.String(),
			"on_hand":     stockErr.OnHand.String(),
			"requested":   stockErr.Requested.String(),
			"shortage":    stockErr.Shortage().String(),
		}, dto.ErrCodeInsufficientStock, stockErr.Error(), true
	}

	var remainingErr *picking.RemainingExceededError
	if errors.As(err, &remainingErr) {
		return map[string]interface{}{
			"job_id":    remainingErr.JobID.String(),
			"sku_id":    remainingErr.SkuID.String(),
			"planned":   remainingErr.Planned.String(),
			"picked":    remainingErr.Picked.String(),
			"requested": remainingErr.Requested.String(),
		}, dto.ErrCodeNotInJob, remainingErr.Error(), true
	}

	var notInJobErr *job.NotInJobError
	if errors.As(err, &notInJobErr) {
		return map[string]interface{}{
			"job_id": notInJobErr.JobID.String(),
			"sku_id": notInJobErr.SkuID.String(),
		}, dto.ErrCodeNotInJob, notInJobErr.Error(), true
	}

	var ambiguousErr *resolve.AmbiguousMatchError
	if errors.As(err, &ambiguousErr) {
		return map[string]interface{}{
			"maker_code": ambiguousErr.MakerCode,
			"count":      ambiguousErr.Count,
		}, dto.ErrCodeAmbiguousMatch, ambiguousErr.Error(), true
	}

	return nil, "", "", false
}
