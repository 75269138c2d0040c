package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/indicator-dashboard/internal/config"
)

func testConfig(baseURL string) *config.NarrativeConfig {
	return &config.NarrativeConfig{
		BaseURL:        baseURL,
		APIKey:         "test_key",
		Model:          "gpt-3.5-turbo",
		Temperature:    0.5,
		MaxTokens:      500,
		RequestTimeout: 5 * time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 100,
	}
}

func TestClient_Complete(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test_key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-3.5-turbo", req.Model)
			assert.Equal(t, 0.5, req.Temperature)
			assert.Equal(t, 500, req.MaxTokens)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "You are a helpful assistant.", req.Messages[0].Content)
			assert.Equal(t, "Analyzing GDP", req.Messages[1].Content)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  GDP is stable.\n"}}]}`))
		}))
		defer server.Close()

		text, err := NewClient(testConfig(server.URL+"/"), logger).Complete(context.Background(), "Analyzing GDP")
		require.NoError(t, err)
		assert.Equal(t, "GDP is stable.", text)
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := testConfig("http://127.0.0.1:0")
		cfg.APIKey = ""

		_, err := NewClient(cfg, logger).Complete(context.Background(), "x")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"quota"}`))
		}))
		defer server.Close()

		_, err := NewClient(testConfig(server.URL), logger).Complete(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := NewClient(testConfig(server.URL), logger).Complete(context.Background(), "x")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(testConfig(server.URL), logger)
		for i := 0; i < 3; i++ {
			_, err := c.Complete(context.Background(), "x")
			require.Error(t, err)
		}

		_, err := c.Complete(context.Background(), "x")
		assert.ErrorIs(t, err, ErrCircuitOpen)
		assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cfg := testConfig("http://127.0.0.1:0")
		cfg.RateLimitRPS = 0.001
		cfg.RateLimitBurst = 0

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClient(cfg, logger).Complete(ctx, "x")
		assert.Error(t, err)
	})
}
