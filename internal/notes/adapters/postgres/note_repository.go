// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"sendnotes/internal/notes/domain/entities"
	"sendnotes/internal/notes/ports/repositories"
	"sendnotes/pkg/logger"
)

// PgxPool описывает часть пула pgx, используемую репозиторием.
// Позволяет подменять пул в тестах (pgxmock).
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPool
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPool) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД и возвращает присвоенный идентификатор.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note")

	var noteID int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO note (text, "timestamp") VALUES ($1, $2) RETURNING id`,
		note.Text, note.Timestamp,
	).Scan(&noteID)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", noteID))
	return noteID, nil
}

// GetByID получает заметку по ID. Возвращает nil, nil если заметки нет.
func (r *NoteRepository) GetByID(ctx context.Context, noteID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.Int64("noteID", noteID))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, text, "timestamp" FROM note WHERE id = $1`,
		noteID,
	).Scan(&note.ID, &note.Text, &note.Timestamp)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// List получает одну страницу заметок, отсортированных по времени создания.
func (r *NoteRepository) List(ctx context.Context, pageNumber, pageSize int, descending bool) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes",
		zap.Int("pageNumber", pageNumber),
		zap.Int("pageSize", pageSize),
		zap.Bool("descending", descending))

	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		`SELECT id, text, "timestamp" FROM note ORDER BY "timestamp" %s, id %s LIMIT $1 OFFSET $2`,
		direction, direction,
	)

	rows, err := r.pool.Query(ctx, query, pageSize, pageNumber*pageSize)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// Search получает все заметки, содержащие подстроку, без учета регистра.
// Порядок результатов не задается явно.
func (r *NoteRepository) Search(ctx context.Context, substring string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Search"))
	log.Debug(ctx, "searching notes")

	rows, err := r.pool.Query(ctx,
		`SELECT id, text, "timestamp" FROM note WHERE text ILIKE '%' || $1 || '%'`,
		substring,
	)
	if err != nil {
		log.Error(ctx, "failed to search notes", zap.Error(err))
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func scanNotes(rows pgx.Rows) ([]*entities.Note, error) {
	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Text, &note.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}
