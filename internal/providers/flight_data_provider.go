package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sirms/console/internal/constants"
	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
)

// upstream endpoint labels used in logs and metrics
const (
	endpointFplByCallsign = "fpl_by_callsign"
	endpointFplByGUFI     = "fpl_by_gufi"
	endpointSchema        = "schema"
	endpointMetReport     = "met_report"
)

// maxBodyBytes caps how much of an upstream response is read
const maxBodyBytes = 4 << 20

// FlightDataProvider talks to the flight data REST service
type FlightDataProvider struct {
	BaseURL string
	Client  *http.Client
	Metrics *metrics.MetricsRegistry
}

// NewFlightDataProvider creates a provider rooted at baseURL
func NewFlightDataProvider(baseURL string, timeout time.Duration, m *metrics.MetricsRegistry) *FlightDataProvider {
	return &FlightDataProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
		Metrics: m,
	}
}

// GetProviderType returns the provider type identifier
func (p *FlightDataProvider) GetProviderType() string {
	return "fpl_rest_api"
}

// ============================================================================
// Flight plan lookups
// ============================================================================

// FindFlightPlan fetches the latest flight plan filed for callsign at instant.
// A nil record with a nil error means the service has no matching plan.
func (p *FlightDataProvider) FindFlightPlan(ctx context.Context, callsign string, instant time.Time) (*dtos.FlightRecord, int, error) {
	if strings.TrimSpace(callsign) == "" {
		return nil, 0, &ProviderError{
			Code:     constants.ErrCodeInvalidDataFormat,
			Endpoint: endpointFplByCallsign,
			Message:  "Callsign cannot be empty",
		}
	}

	endpoint := "/find/fpl/" + url.PathEscape(callsign) + "/" + url.PathEscape(dtos.FormatInstant(instant))

	var rec dtos.FlightRecord
	found, status, err := p.doGET(ctx, endpointFplByCallsign, endpoint, &rec)
	if err != nil || !found {
		return nil, status, err
	}
	return &rec, status, nil
}

// FindDepArr fetches the latest departure/arrival record for a gufi
func (p *FlightDataProvider) FindDepArr(ctx context.Context, gufi string) (*dtos.FlightRecord, int, error) {
	if strings.TrimSpace(gufi) == "" {
		return nil, 0, &ProviderError{
			Code:     constants.ErrCodeInvalidDataFormat,
			Endpoint: endpointFplByGUFI,
			Message:  "GUFI cannot be empty",
		}
	}

	var rec dtos.FlightRecord
	found, status, err := p.doGET(ctx, endpointFplByGUFI, "/find/fpl/"+url.PathEscape(gufi), &rec)
	if err != nil || !found {
		return nil, status, err
	}
	return &rec, status, nil
}

// GetDefaultSchema fetches the canned preview record
func (p *FlightDataProvider) GetDefaultSchema(ctx context.Context) (*dtos.FlightRecord, int, error) {
	var rec dtos.FlightRecord
	found, status, err := p.doGET(ctx, endpointSchema, "/schema", &rec)
	if err != nil || !found {
		return nil, status, err
	}
	return &rec, status, nil
}

// ============================================================================
// Met reports
// ============================================================================

// FindMetReport fetches runway wind and visibility observations
func (p *FlightDataProvider) FindMetReport(ctx context.Context, q dtos.WeatherQuery) (*dtos.MetReportResponse, int, error) {
	if q.Runway == "" {
		return nil, 0, &ProviderError{
			Code:     constants.ErrCodeInvalidDataFormat,
			Endpoint: endpointMetReport,
			Message:  "Runway cannot be empty",
		}
	}

	endpoint := fmt.Sprintf("/find/met-report/%s/%s/%s/%s",
		url.PathEscape(dtos.FormatInstant(q.IncidentTime)),
		url.PathEscape(q.Runway),
		url.PathEscape(q.DestinationAerodrome),
		url.PathEscape(q.DepartureAerodrome),
	)

	var report dtos.MetReportResponse
	found, status, err := p.doGET(ctx, endpointMetReport, endpoint, &report)
	if err != nil || !found {
		return nil, status, err
	}
	return &report, status, nil
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// doGET performs a GET and decodes a JSON body into result. found is false
// when the service answered 404 or with an empty/null body.
func (p *FlightDataProvider) doGET(ctx context.Context, label, endpoint string, result interface{}) (found bool, status int, err error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		p.observe(label, outcome, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return false, 0, &ProviderError{
			Code:     constants.ErrCodeNetworkError,
			Endpoint: label,
			Message:  "Failed to create request",
			Err:      err,
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		logging.Warn("Flight data request failed", "endpoint", label, "error", err.Error())
		return false, 0, &ProviderError{
			Code:     constants.ErrCodeNetworkError,
			Endpoint: label,
			Message:  constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if readErr != nil {
		return false, resp.StatusCode, &ProviderError{
			Code:     constants.ErrCodeNetworkError,
			Endpoint: label,
			Message:  "Failed to read response body",
			Err:      readErr,
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		outcome = "absent"
		return false, resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, resp.StatusCode, p.buildHTTPError(resp.StatusCode, label, string(bodyBytes))
	}

	trimmed := bytes.TrimSpace(bodyBytes)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		outcome = "absent"
		return false, resp.StatusCode, nil
	}

	if err := json.Unmarshal(trimmed, result); err != nil {
		return false, resp.StatusCode, &ProviderError{
			Code:     constants.ErrCodeInvalidDataFormat,
			Endpoint: label,
			Message:  "Failed to decode response",
			Details:  string(bodyBytes),
			Err:      err,
		}
	}

	outcome = "ok"
	return true, resp.StatusCode, nil
}

func (p *FlightDataProvider) observe(label, outcome string, d time.Duration) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.UpstreamRequestsTotal.WithLabelValues(label, outcome).Inc()
	p.Metrics.UpstreamRequestDuration.WithLabelValues(label).Observe(d.Seconds())
}

// buildHTTPError creates appropriate error based on status code
func (p *FlightDataProvider) buildHTTPError(statusCode int, endpoint string, body string) error {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:     constants.ErrCodeRateLimited,
			Endpoint: endpoint,
			Message:  constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details:  body,
		}
	case http.StatusBadRequest:
		return &ProviderError{
			Code:     constants.ErrCodeInvalidDataFormat,
			Endpoint: endpoint,
			Message:  fmt.Sprintf("Bad request to %s", endpoint),
			Details:  body,
		}
	default:
		return &ProviderError{
			Code:     constants.ErrCodeUpstreamStatus,
			Endpoint: endpoint,
			Message:  fmt.Sprintf("HTTP %d from %s", statusCode, endpoint),
			Details:  body,
		}
	}
}
