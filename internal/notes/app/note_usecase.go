// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"sendnotes/internal/notes/domain/entities"
	"sendnotes/internal/notes/ports/cache"
	"sendnotes/internal/notes/ports/repositories"
	"sendnotes/internal/notes/ports/services"
	"sendnotes/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrEmptyText       = errors.New("note text must not be empty")
	ErrInvalidOrder    = errors.New("order must be 'asc' or 'desc'")
	ErrInvalidPage     = errors.New("invalid page parameters")
	ErrInvalidTimezone = errors.New("unknown timezone")
	ErrNoteNotFound    = errors.New("note not found")
)

// Допустимые направления сортировки.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// DefaultTimezone - часовой пояс по умолчанию для списка заметок.
const DefaultTimezone = "GMT"

// EmptyPageError возвращается, когда запрошенная страница не содержит заметок.
// Номер страницы сохраняется, чтобы вызывающая сторона могла отличить выход
// за последнюю страницу.
type EmptyPageError struct {
	Page int
}

func (e *EmptyPageError) Error() string {
	return fmt.Sprintf("no notes available at page number %d", e.Page)
}

// NotificationError возвращается, когда доставка заметки во внешний webhook
// не удалась. Ошибка доставки прерывает создание заметки целиком: заметка
// не сохраняется.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return "failed to push note to webhook: " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	notifier  services.Notifier
	noteCache cache.Cache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
// noteCache может быть nil: чтение тогда идет напрямую из хранилища.
func NewNoteUseCase(noteRepo repositories.NoteRepository, notifier services.Notifier, noteCache cache.Cache) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		notifier:  notifier,
		noteCache: noteCache,
	}
}

// CreateNote создает новую заметку: текст сначала доставляется во внешний
// webhook и только после успешной доставки заметка сохраняется.
func (uc *NoteUseCase) CreateNote(ctx context.Context, text string) (entities.NoteView, error) {
	if text == "" {
		return entities.NoteView{}, ErrEmptyText
	}

	note := entities.NewNote(text)

	if err := uc.notifier.Push(ctx, text); err != nil {
		return entities.NoteView{}, &NotificationError{Err: err}
	}

	noteID, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return entities.NoteView{}, fmt.Errorf("failed to create note: %w", err)
	}
	note.ID = noteID

	return note.View(), nil
}

// ListNotes возвращает одну страницу заметок, отсортированных по времени
// создания, со временем в запрошенном часовом поясе.
func (uc *NoteUseCase) ListNotes(ctx context.Context, tz, order string, pageNumber, pageSize int) ([]entities.NoteView, error) {
	direction := strings.ToLower(order)
	if direction != OrderAsc && direction != OrderDesc {
		return nil, fmt.Errorf("order %q: %w", order, ErrInvalidOrder)
	}

	if pageNumber < 0 || pageSize < 1 {
		return nil, fmt.Errorf("pageNumber=%d pageSize=%d: %w", pageNumber, pageSize, ErrInvalidPage)
	}

	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", tz, ErrInvalidTimezone)
	}

	notes, err := uc.noteRepo.List(ctx, pageNumber, pageSize, direction == OrderDesc)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		return nil, &EmptyPageError{Page: pageNumber}
	}

	views := make([]entities.NoteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, note.ViewIn(loc))
	}

	return views, nil
}

// GetNoteByID возвращает заметку по ID без преобразования часового пояса.
// Заметки неизменяемы, поэтому закэшированное представление не устаревает.
func (uc *NoteUseCase) GetNoteByID(ctx context.Context, noteID int64) (entities.NoteView, error) {
	cacheKey := noteCacheKey(noteID)

	if uc.noteCache != nil {
		if cached, err := uc.noteCache.Get(ctx, cacheKey); err == nil && cached != "" {
			var view entities.NoteView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return view, nil
			}
		}
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return entities.NoteView{}, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return entities.NoteView{}, ErrNoteNotFound
	}

	view := note.View()

	if uc.noteCache != nil {
		if encoded, err := json.Marshal(view); err == nil {
			if err := uc.noteCache.Set(ctx, cacheKey, string(encoded), 0); err != nil {
				logger.Log(ctx).Warn(ctx, "failed to cache note", zap.Int64("noteID", noteID), zap.Error(err))
			}
		}
	}

	return view, nil
}

// SearchNotes возвращает все заметки, содержащие подстроку, без учета регистра.
// Пустая подстрока соответствует всем заметкам.
func (uc *NoteUseCase) SearchNotes(ctx context.Context, text string) ([]entities.NoteView, error) {
	notes, err := uc.noteRepo.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	views := make([]entities.NoteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, note.View())
	}

	return views, nil
}

func noteCacheKey(noteID int64) string {
	return fmt.Sprintf("note:%d", noteID)
}
