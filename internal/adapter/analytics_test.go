package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics_LogOnlyWithoutMeasurementID(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	analytics, err := backend.GetAnalytics(context.Background(), newTestApp(t, srv.URL))
	require.NoError(t, err)

	require.NoError(t, analytics.LogEvent(context.Background(), "app_start", map[string]any{"driver": "firebase"}))
	assert.Zero(t, hits.Load())
}

func TestAnalytics_SendsMeasurementProtocolEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/mp/collect", r.URL.Path)
		assert.Equal(t, "G-TEST", r.URL.Query().Get("measurement_id"))
		assert.Equal(t, "mp-secret", r.URL.Query().Get("api_secret"))

		body := decodeBody(t, r)
		assert.NotEmpty(t, body["client_id"])
		events, _ := body["events"].([]any)
		if assert.Len(t, events, 1) {
			event := events[0].(map[string]any)
			assert.Equal(t, "page_view", event["name"])
			assert.Equal(t, map[string]any{"route": "posts"}, event["params"])
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, func(cfg *config.StructuredConfig) {
		cfg.Backend.MeasurementID = "G-TEST"
		cfg.Backend.AnalyticsSecret = "mp-secret"
	})
	analytics, err := backend.GetAnalytics(context.Background(), app)
	require.NoError(t, err)

	assert.NoError(t, analytics.LogEvent(context.Background(), "page_view", map[string]any{"route": "posts"}))
}

func TestAnalytics_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, func(cfg *config.StructuredConfig) {
		cfg.Backend.MeasurementID = "G-TEST"
		cfg.Backend.AnalyticsSecret = "mp-secret"
	})
	analytics, err := backend.GetAnalytics(context.Background(), app)
	require.NoError(t, err)

	assert.ErrorIs(t, analytics.LogEvent(context.Background(), "page_view", nil), ErrUnexpectedResponse)
}

func TestAnalytics_Closed(t *testing.T) {
	analytics, err := backend.GetAnalytics(context.Background(), newTestApp(t, "http://localhost:1"))
	require.NoError(t, err)

	require.NoError(t, analytics.Close())
	assert.ErrorIs(t, analytics.LogEvent(context.Background(), "late", nil), ErrClientClosed)
}
