package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/common"
)

// httpClient implements the Client interface against the model server's
// predict endpoint.
type httpClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// newHTTPClient creates a predictor client for an HTTP model server.
func newHTTPClient(cfg Config) (Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: oracle endpoint is required", common.ErrMissingConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &httpClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

// Predict sends one batched prediction request. Any transport, status, or
// shape failure is reported as an oracle-unavailable error so the caller
// aborts the scoring pass instead of persisting partial predictions.
func (c *httpClient) Predict(ctx context.Context, vectors [][]float64) ([]float64, error) {
	jsonBody, err := json.Marshal(predictRequest{Instances: vectors})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/predict", strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", common.ErrOracleUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", common.ErrOracleUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: model server error (status %d): %s", common.ErrOracleUnavailable, resp.StatusCode, string(body))
	}

	var response predictResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", common.ErrOracleUnavailable, err)
	}

	if len(response.Predictions) != len(vectors) {
		return nil, fmt.Errorf("%w: got %d predictions for %d inputs",
			common.ErrPredictionShape, len(response.Predictions), len(vectors))
	}

	return response.Predictions, nil
}
