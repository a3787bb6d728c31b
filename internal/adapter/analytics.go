package adapter

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
)

// analyticsClient sends events through the Measurement Protocol. Without a
// measurement ID or API secret it only logs them.
type analyticsClient struct {
	client        *utils.HTTPClient
	measurementID string
	apiSecret     string

	// clientID identifies this server instance as the analytics "client".
	clientID string
	closed   atomic.Bool

	logger *logger.Logger
}

func newAnalyticsClient(client *utils.HTTPClient, cfg config.Backend, log *logger.Logger) *analyticsClient {
	return &analyticsClient{
		client:        client,
		measurementID: cfg.MeasurementID,
		apiSecret:     cfg.AnalyticsSecret,
		clientID:      utils.NewUUIDGenerator().Generate(),
		logger:        log,
	}
}

type collectEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type collectRequest struct {
	ClientID string         `json:"client_id"`
	Events   []collectEvent `json:"events"`
}

// LogEvent implements [backend.AnalyticsClient].
func (c *analyticsClient) LogEvent(ctx context.Context, name string, params map[string]any) error {
	if c.closed.Load() {
		return ErrClientClosed
	}

	c.logger.Info().Str("event", name).Fields(params).Msg("analytics event")

	if c.measurementID == "" || c.apiSecret == "" {
		return nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("measurement_id", c.measurementID).
		SetQueryParam("api_secret", c.apiSecret).
		SetHeader("Content-Type", "application/json").
		SetBody(collectRequest{
			ClientID: c.clientID,
			Events:   []collectEvent{{Name: name, Params: params}},
		}).
		Post("/mp/collect")
	if err != nil {
		return fmt.Errorf("collect request: %w", err)
	}
	if !isSuccess(resp) {
		return fmt.Errorf("%w: collect http %d", ErrUnexpectedResponse, resp.StatusCode())
	}

	return nil
}

// Close implements [backend.AnalyticsClient]. Events are sent synchronously,
// so there is nothing to flush.
func (c *analyticsClient) Close() error {
	c.closed.Store(true)
	return nil
}
