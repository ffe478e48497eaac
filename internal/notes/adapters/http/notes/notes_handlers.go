// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sendnotes/internal/notes/adapters/http/dto"
	"sendnotes/internal/notes/adapters/http/middleware"
	"sendnotes/internal/notes/app"
	"sendnotes/internal/notes/ports/api"
	"sendnotes/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerCreateNote  = "handling create note request"
	LogHandlerGetNote     = "handling get note request"
	LogHandlerListNotes   = "handling list notes request"
	LogHandlerSearchNotes = "handling search notes request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Значения параметров запроса по умолчанию.
const (
	defaultOrder      = app.OrderAsc
	defaultPageNumber = "0"
	defaultPageSize   = "50"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteService api.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteService api.NoteService) *Handler {
	return &Handler{
		noteService: noteService,
	}
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(reqCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	view, err := h.noteService.CreateNote(reqCtx, req.Text)
	if err != nil {
		log.Error(reqCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(view); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes обрабатывает запрос на получение страницы заметок. Время заметок
// конвертируется в запрошенный часовой пояс.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(reqCtx, LogHandlerListNotes)

	tz := ctx.Query("tz")
	order := ctx.Query("order", defaultOrder)
	pageNumberStr := ctx.Query("pageNumber", defaultPageNumber)
	pageSizeStr := ctx.Query("pageSize", defaultPageSize)

	pageNumber, err := strconv.Atoi(pageNumberStr)
	if err != nil {
		log.Error(reqCtx, ErrMsgInvalidPagination, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil {
		log.Error(reqCtx, ErrMsgInvalidPagination, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
	}

	views, err := h.noteService.ListNotes(reqCtx, tz, order, pageNumber, pageSize)
	if err != nil {
		log.Error(reqCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(views); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(reqCtx, LogHandlerGetNote)

	noteID, err := strconv.ParseInt(ctx.Params("note_id"), 10, 64)
	if err != nil {
		log.Error(reqCtx, ErrMsgInvalidNoteID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	view, err := h.noteService.GetNoteByID(reqCtx, noteID)
	if err != nil {
		if errors.Is(err, app.ErrNoteNotFound) {
			log.Debug(reqCtx, "note not found", zap.Int64("noteID", noteID))
			return sendError(ctx, fiber.StatusNotFound, fmt.Sprintf("Note with id %d not found", noteID))
		}
		log.Error(reqCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(view); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SearchNotes обрабатывает запрос на поиск заметок по подстроке.
func (h *Handler) SearchNotes(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.SearchNotes"))
	log.Debug(reqCtx, LogHandlerSearchNotes)

	views, err := h.noteService.SearchNotes(reqCtx, ctx.Query("text"))
	if err != nil {
		log.Error(reqCtx, "failed to search notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(views); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// requestContext извлекает контекст запроса, записанный промежуточным ПО.
func requestContext(ctx fiber.Ctx) context.Context {
	reqCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context)
	if !ok {
		reqCtx = ctx.Context() // Запасной вариант
	}
	return reqCtx
}

// handleError переводит ошибки бизнес-логики в соответствующий HTTP-статус.
func handleError(ctx fiber.Ctx, err error) error {
	var emptyPage *app.EmptyPageError
	if errors.As(err, &emptyPage) {
		return sendError(ctx, fiber.StatusBadRequest, emptyPage.Error())
	}

	var notification *app.NotificationError
	if errors.As(err, &notification) {
		return sendError(ctx, fiber.StatusBadGateway, notification.Error())
	}

	switch {
	case errors.Is(err, app.ErrEmptyText),
		errors.Is(err, app.ErrInvalidOrder),
		errors.Is(err, app.ErrInvalidPage),
		errors.Is(err, app.ErrInvalidTimezone):
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNoteNotFound):
		return sendError(ctx, fiber.StatusNotFound, err.Error())
	}

	return sendError(ctx, fiber.StatusInternalServerError, "Internal server error")
}

// sendError отправляет тело ошибки в едином формате.
func sendError(ctx fiber.Ctx, status int, message string) error {
	body := dto.ErrorResponse{
		ErrorCode: status,
		ErrorMsg:  message,
		Status:    http.StatusText(status),
	}
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}
