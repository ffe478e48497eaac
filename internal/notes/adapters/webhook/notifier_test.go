package webhook_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sendnotes/internal/notes/adapters/webhook"
	"sendnotes/internal/notes/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Push(t *testing.T) {
	ctx := context.Background()

	t.Run("successful delivery", func(t *testing.T) {
		var gotMethod, gotContentType, gotBody string
		var calls int

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := webhook.NewNotifier(&config.WebhookConfig{URL: server.URL, Timeout: time.Second})
		err := notifier.Push(ctx, "buy milk")

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotContentType)
		assert.JSONEq(t, `{"text":"buy milk"}`, gotBody)
	})

	t.Run("payload escapes special characters", func(t *testing.T) {
		var gotText string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var p struct {
				Text string `json:"text"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			gotText = p.Text
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := webhook.NewNotifier(&config.WebhookConfig{URL: server.URL, Timeout: time.Second})
		err := notifier.Push(ctx, `say "hello"`)

		require.NoError(t, err)
		assert.Equal(t, `say "hello"`, gotText)
	})

	t.Run("non-2xx status is a delivery failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		notifier := webhook.NewNotifier(&config.WebhookConfig{URL: server.URL, Timeout: time.Second})
		err := notifier.Push(ctx, "buy milk")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to deliver note to webhook")
	})

	t.Run("unreachable webhook", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		server.Close()

		notifier := webhook.NewNotifier(&config.WebhookConfig{URL: server.URL, Timeout: time.Second})
		err := notifier.Push(ctx, "buy milk")

		require.Error(t, err)
	})

	t.Run("slow webhook hits the bounded timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := webhook.NewNotifier(&config.WebhookConfig{URL: server.URL, Timeout: 50 * time.Millisecond})
		err := notifier.Push(ctx, "buy milk")

		require.Error(t, err)
	})
}
