package decor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"edenstone/internal/logger"
	"edenstone/internal/metrics"

	"go.uber.org/zap"
)

const decorsPath = "/api/v1/decors"

// Source lists decors from the catalog API.
type Source interface {
	ListDecors(ctx context.Context, q ListQuery) (*ListResponse, error)
}

// APIClient talks to the remote catalog API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if baseURL == "" {
		logger.L().Warn("catalog API base URL is empty")
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ----------------- ListDecors -----------------

func (c *APIClient) ListDecors(ctx context.Context, q ListQuery) (*ListResponse, error) {
	endpoint := c.baseURL + decorsPath + "?" + q.Values().Encode()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog_api"),
		zap.Int("limit", q.Limit),
		zap.Int("offset", q.Offset),
		zap.String("sort", q.Sort),
	)
	timer := metrics.StartTimer()
	metrics.UpstreamRequests.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed building request", zap.Error(err))
		metrics.UpstreamErrors.Inc()
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("catalog request failed", zap.Error(err), zap.Duration("duration", timer.Duration()))
		metrics.UpstreamErrors.Inc()
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		metrics.UpstreamErrors.Inc()
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("catalog API returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		metrics.UpstreamErrors.Inc()
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bodyBytes)}
	}

	var out ListResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		log.Error("failed decoding catalog response", zap.Error(err))
		metrics.UpstreamErrors.Inc()
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	log.Debug("catalog page fetched",
		zap.Int("count", len(out.Items)),
		zap.Int("total", out.TotalOr(len(out.Items))),
		zap.Duration("duration", timer.Duration()),
	)

	return &out, nil
}
