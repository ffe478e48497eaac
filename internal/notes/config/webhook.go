package config

import "time"

// WebhookConfig содержит настройки исходящего webhook-а уведомлений.
// URL задается только через конфигурацию и никогда не зашивается в код.
type WebhookConfig struct {
	URL     string        `yaml:"url" env:"NOTES_WEBHOOK_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"NOTES_WEBHOOK_TIMEOUT" env-default:"5s"`
}
