// Package webhook содержит доставку заметок во внешний webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"sendnotes/internal/notes/config"
	"sendnotes/internal/notes/ports/services"
	"sendnotes/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrEncodePayload = "failed to encode webhook payload"
	ErrBuildRequest  = "failed to build webhook request"
	ErrDeliver       = "failed to deliver note to webhook"
)

// payload - тело исходящего запроса: {"text": "<текст заметки>"}.
type payload struct {
	Text string `json:"text"`
}

// Notifier реализует интерфейс services.Notifier поверх HTTP POST.
// Выполняется ровно одна попытка доставки с ограниченным таймаутом;
// тело ответа не читается, важен только статус.
type Notifier struct {
	cfg    *config.WebhookConfig
	client *http.Client
}

// NewNotifier создает новый notifier для настроенного webhook URL.
func NewNotifier(cfg *config.WebhookConfig) services.Notifier {
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Push отправляет текст заметки во внешний webhook.
func (n *Notifier) Push(ctx context.Context, text string) error {
	log := logger.Log(ctx).With(zap.String("method", "Notifier.Push"))
	log.Debug(ctx, "pushing note to webhook")

	body, err := json.Marshal(payload{Text: text})
	if err != nil {
		log.Error(ctx, ErrEncodePayload, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrEncodePayload, err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		log.Error(ctx, ErrBuildRequest, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrBuildRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.Error(ctx, ErrDeliver, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeliver, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error(ctx, ErrDeliver, zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s: unexpected status %d", ErrDeliver, resp.StatusCode)
	}

	log.Debug(ctx, "note pushed to webhook")
	return nil
}
