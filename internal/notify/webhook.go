package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"saludos/internal/logger"
)

type webhookNotifier struct {
	url    string
	client *http.Client
	logger logger.Logger
}

type webhookPayload struct {
	JobID   string `json:"jobId"`
	VideoID string `json:"videoId"`
}

// NewWebhookNotifier posts {"jobId", "videoId"} to url. The worker only
// uses the call as a wake-up; the queue stays the source of truth.
func NewWebhookNotifier(url string, timeout time.Duration, log logger.Logger) Notifier {
	return &webhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: log.With(logger.String("component", "webhook_notifier")),
	}
}

func (w *webhookNotifier) NotifyJobCreated(ctx context.Context, jobID string) error {
	body, err := json.Marshal(webhookPayload{JobID: jobID, VideoID: jobID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

type logNotifier struct {
	logger logger.Logger
}

// NewLogNotifier creates a notifier that only logs, for setups without a
// worker webhook
func NewLogNotifier(log logger.Logger) Notifier {
	return &logNotifier{
		logger: log.With(logger.String("component", "log_notifier")),
	}
}

func (l *logNotifier) NotifyJobCreated(ctx context.Context, jobID string) error {
	l.logger.WithContext(ctx).Info("no worker webhook configured, job left for polling",
		logger.String("job_id", jobID))
	return nil
}
