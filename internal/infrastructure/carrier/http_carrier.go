package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stouper/wms-sub002/internal/domain/shipping"
)

// maxResponseSize is the maximum allowed response size from the carrier API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Errors for carrier configuration
var (
	ErrConfigMissingBaseURL = errors.New("carrier: base URL is required")
	ErrConfigMissingAPIKey  = errors.New("carrier: API key is required")
)

// Config holds configuration for the external carrier API
type Config struct {
	// Code identifies the carrier and is stamped on parcels and reservations
	Code string
	// BaseURL is the carrier API endpoint
	BaseURL string
	// APIKey authenticates requests
	APIKey string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// Validate validates the carrier configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.Code == "" {
		c.Code = "default"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// HTTPCarrier implements shipping.Carrier against a JSON-over-HTTP courier
// API. Reserve issues a live waybill on every successful call; idempotency is
// the reservation coordinator's problem, not this client's.
type HTTPCarrier struct {
	config     *Config
	httpClient *http.Client
}

// NewHTTPCarrier creates a new HTTPCarrier with the given configuration
func NewHTTPCarrier(config *Config) (*HTTPCarrier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &HTTPCarrier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Code returns the carrier identifier
func (c *HTTPCarrier) Code() string {
	return c.config.Code
}

type reserveRequestBody struct {
	Reference  string `json:"reference"`
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Address    string `json:"address"`
}

type reserveResponseBody struct {
	TrackingNumber string `json:"tracking_number"`
	BundleKey      string `json:"bundle_key"`
	ReservedAt     string `json:"reserved_at"`
	ErrorCode      string `json:"error_code,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// Reserve requests a new waybill from the carrier
func (c *HTTPCarrier) Reserve(ctx context.Context, req shipping.ReserveRequest) (*shipping.ReserveResult, error) {
	body := reserveRequestBody{
		Reference:  req.JobID,
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		PostalCode: req.PostalCode,
		Address:    req.Address,
	}

	var resp reserveResponseBody
	if err := c.post(ctx, "/v1/reservations", body, &resp); err != nil {
		return nil, err
	}
	if resp.ErrorCode != "" {
		return nil, fmt.Errorf("carrier: reserve rejected: %s (%s)", resp.ErrorMessage, resp.ErrorCode)
	}
	if resp.TrackingNumber == "" {
		return nil, errors.New("carrier: reserve response missing tracking number")
	}

	reservedAt, err := time.Parse(time.RFC3339, resp.ReservedAt)
	if err != nil {
		reservedAt = time.Now()
	}
	return &shipping.ReserveResult{
		TrackingNumber: resp.TrackingNumber,
		BundleKey:      resp.BundleKey,
		ReservedAt:     reservedAt,
	}, nil
}

type cancelRequestBody struct {
	TrackingNumber string `json:"tracking_number"`
	BundleKey      string `json:"bundle_key,omitempty"`
}

// CancelReservation voids a previously issued waybill at the carrier
func (c *HTTPCarrier) CancelReservation(ctx context.Context, trackingNumber, bundleKey string) error {
	body := cancelRequestBody{
		TrackingNumber: trackingNumber,
		BundleKey:      bundleKey,
	}

	var resp reserveResponseBody
	if err := c.post(ctx, "/v1/reservations/cancel", body, &resp); err != nil {
		return err
	}
	if resp.ErrorCode != "" {
		return fmt.Errorf("carrier: cancel rejected: %s (%s)", resp.ErrorMessage, resp.ErrorCode)
	}
	return nil
}

func (c *HTTPCarrier) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("carrier: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("carrier: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("carrier: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("carrier: failed to read response: %w", err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return fmt.Errorf("carrier: unexpected status %d: %s", httpResp.StatusCode, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("carrier: failed to decode response: %w", err)
	}
	return nil
}

var _ shipping.Carrier = (*HTTPCarrier)(nil)
