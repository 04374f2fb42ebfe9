package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stouper/wms-sub002/internal/application/picking"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("insufficient stock carries structured shortage detail", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, &ledger.InsufficientStockError{
			SkuID:      uuid.New(),
			LocationID: uuid.New(),
			OnHand:     decimal.NewFromInt(1),
			Requested:  decimal.NewFromInt(3),
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
		assert.Equal(t, "1", resp.Error.Details["on_hand"])
		assert.Equal(t, "3", resp.Error.Details["requested"])
		assert.Equal(t, "2", resp.Error.Details["shortage"])
	})

	t.Run("remaining exceeded carries the plan detail", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, &picking.RemainingExceededError{
			JobID:     uuid.New(),
			SkuID:     uuid.New(),
			Planned:   decimal.NewFromInt(2),
			Picked:    decimal.NewFromInt(1),
			Requested: decimal.NewFromInt(4),
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeNotInJob, resp.Error.Code)
		assert.Equal(t, "2", resp.Error.Details["planned"])
		assert.Equal(t, "4", resp.Error.Details["requested"])
	})

	t.Run("domain sentinels map to their API codes", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
			code   string
		}{
			{shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
			{shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
			{shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
			{shared.ErrNeedForceOut, http.StatusUnprocessableEntity, dto.ErrCodeNeedForceOut},
			{shared.ErrOverReceive, http.StatusUnprocessableEntity, dto.ErrCodeOverReceive},
			{shared.ErrReservationInProgress, http.StatusConflict, dto.ErrCodeReservationInProgress},
		}
		for _, tt := range tests {
			c, w := newTestContext(t)
			h.HandleError(c, tt.err)
			assert.Equal(t, tt.status, w.Code, tt.code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.code, resp.Error.Code)
		}
	})

	t.Run("unknown errors become opaque 500s", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "connection refused")
	})

	t.Run("request id from context is echoed", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Set(RequestIDKey, "req-123")
		h.HandleError(c, shared.ErrNotFound)

		resp := decodeResponse(t, w)
		assert.Equal(t, "req-123", resp.Error.RequestID)
	})
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success wraps the payload", func(t *testing.T) {
		c, w := newTestContext(t)
		h.Success(c, gin.H{"hello": "world"})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("meta reports total pages", func(t *testing.T) {
		c, w := newTestContext(t)
		h.SuccessWithMeta(c, []string{}, 45, 2, 20)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(45), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})
}
