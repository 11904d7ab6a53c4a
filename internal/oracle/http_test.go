package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JahnaviK1725/dca-collection/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Predict(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody predictRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(predictResponse{Predictions: []float64{2.5, -1}})
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, APIKey: "secret"})
	require.NoError(t, err)

	vectors := [][]float64{
		{100, 30, 30, 0, 0, 30, 0, 0, 0},
		{250, 45, 28, 3.5, 1.2, 31, 175, 12, 0.4},
	}

	preds, err := client.Predict(context.Background(), vectors)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, -1}, preds)

	assert.Equal(t, "/predict", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, vectors, gotBody.Instances)
}

func TestHTTPClient_NoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(predictResponse{Predictions: []float64{1}})
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), [][]float64{{1}})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), [][]float64{{1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrOracleUnavailable))
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), [][]float64{{1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrOracleUnavailable))
}

func TestHTTPClient_PredictionCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(predictResponse{Predictions: []float64{1}})
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), [][]float64{{1}, {2}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrPredictionShape))
}

func TestHTTPClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewClient(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), [][]float64{{1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrOracleUnavailable))
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "default provider", cfg: Config{Endpoint: "http://localhost:9000"}},
		{name: "explicit http", cfg: Config{Provider: "http", Endpoint: "http://localhost:9000"}},
		{name: "case insensitive", cfg: Config{Provider: "HTTP", Endpoint: "http://localhost:9000"}},
		{name: "missing endpoint", cfg: Config{Provider: "http"}, wantErr: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewClient(Config{Provider: "grpc", Endpoint: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported oracle provider")
	})
}
