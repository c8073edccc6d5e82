package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"firewatch/internal/logger"
	"firewatch/internal/metrics"
	"firewatch/internal/models"
)

const defaultWebhookTimeout = 10 * time.Second

// WebhookDispatcher posts alert payloads to the configured notification
// webhook. Delivery is best effort: bounded timeout, no retry, failures only
// logged by callers.
type WebhookDispatcher struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

var _ AlertDispatcher = (*WebhookDispatcher)(nil)

func NewWebhookDispatcher(url string, timeout time.Duration, log *logger.Logger) *WebhookDispatcher {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &WebhookDispatcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Dispatch sends one alert. With no webhook configured it is a no-op, so the
// service runs fine in environments without a notification channel.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, msg models.AlertMessage) error {
	if d.url == "" {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.AlertDispatched(msg.AlertType, metrics.ResultError)
		return fmt.Errorf("post %s alert for %s: %w", msg.AlertType, msg.RoomID, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		metrics.AlertDispatched(msg.AlertType, metrics.ResultError)
		return fmt.Errorf("alert webhook returned %s", resp.Status)
	}

	metrics.AlertDispatched(msg.AlertType, metrics.ResultSuccess)
	return nil
}
