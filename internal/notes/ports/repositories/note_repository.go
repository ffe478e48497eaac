// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"sendnotes/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (int64, error)
	GetByID(ctx context.Context, noteID int64) (*entities.Note, error)
	List(ctx context.Context, pageNumber, pageSize int, descending bool) ([]*entities.Note, error)
	Search(ctx context.Context, substring string) ([]*entities.Note, error)
}
