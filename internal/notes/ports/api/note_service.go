// Package api defines the application-facing service interfaces.
package api

import (
	"context"

	"sendnotes/internal/notes/domain/entities"
)

// NoteService определяет операции сервиса заметок, доступные транспортному слою.
type NoteService interface {
	CreateNote(ctx context.Context, text string) (entities.NoteView, error)
	ListNotes(ctx context.Context, tz, order string, pageNumber, pageSize int) ([]entities.NoteView, error)
	GetNoteByID(ctx context.Context, noteID int64) (entities.NoteView, error)
	SearchNotes(ctx context.Context, text string) ([]entities.NoteView, error)
}
