// Package services defines service interfaces for the notes service.
package services

import "context"

// Notifier определяет интерфейс доставки текста заметки во внешний webhook.
// Доставка выполняется ровно один раз, без повторных попыток.
type Notifier interface {
	Push(ctx context.Context, text string) error
}
