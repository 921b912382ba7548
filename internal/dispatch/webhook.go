package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stemsi/educonnect-backend/internal/model"
)

// TimestampLayout matches the ISO-8601 millisecond timestamps the webhook expects.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// maxErrorBody caps how much of a rejection body is kept for diagnostics.
const maxErrorBody = 1024

// WebhookDispatcher POSTs the payload as JSON to a fixed URL.
type WebhookDispatcher struct {
	url    string
	source string
	client *http.Client
	now    func() time.Time
}

// NewWebhookDispatcher creates a WebhookDispatcher. source is sent as X-Source.
func NewWebhookDispatcher(url, source string, timeout time.Duration) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:    url,
		source: source,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (d *WebhookDispatcher) Channel() string {
	return ChannelWebhook
}

// Dispatch sends the payload and classifies any 2xx answer as delivered.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, payload *model.DispatchPayload) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Source", d.source)
	req.Header.Set("X-Timestamp", d.now().UTC().Format(TimestampLayout))

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RejectedError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	return &Result{StatusCode: resp.StatusCode, Detail: string(snippet)}, nil
}
