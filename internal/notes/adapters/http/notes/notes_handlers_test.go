package notes_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "sendnotes/internal/notes/adapters/http"
	"sendnotes/internal/notes/adapters/http/dto"
	"sendnotes/internal/notes/app"
	"sendnotes/internal/notes/domain/entities"
)

type mockNoteService struct {
	mock.Mock
}

func (m *mockNoteService) CreateNote(ctx context.Context, text string) (entities.NoteView, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(entities.NoteView), args.Error(1)
}

func (m *mockNoteService) ListNotes(ctx context.Context, tz, order string, pageNumber, pageSize int) ([]entities.NoteView, error) {
	args := m.Called(ctx, tz, order, pageNumber, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.NoteView), args.Error(1)
}

func (m *mockNoteService) GetNoteByID(ctx context.Context, noteID int64) (entities.NoteView, error) {
	args := m.Called(ctx, noteID)
	return args.Get(0).(entities.NoteView), args.Error(1)
}

func (m *mockNoteService) SearchNotes(ctx context.Context, text string) ([]entities.NoteView, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.NoteView), args.Error(1)
}

func setupTestApp(service *mockNoteService) *fiber.App {
	fiberApp := fiber.New()
	httpadapter.SetupRouter(fiberApp, service)
	return fiberApp
}

func decodeErrorResponse(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestCreateNoteHandler(t *testing.T) {
	t.Run("successful creation returns 201 with view", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("CreateNote", mock.Anything, "hello").
			Return(entities.NoteView{ID: 1, Text: "hello", Time: "2025-01-15 12:30:45"}, nil)

		fiberApp := setupTestApp(service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/", strings.NewReader(`{"text":"hello"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"text":"hello","time":"2025-01-15 12:30:45"}`, string(payload))
		service.AssertExpectations(t)
	})

	t.Run("empty text returns 400", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("CreateNote", mock.Anything, "").
			Return(entities.NoteView{}, app.ErrEmptyText)

		fiberApp := setupTestApp(service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/", strings.NewReader(`{"text":""}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeErrorResponse(t, resp)
		assert.Equal(t, http.StatusBadRequest, body.ErrorCode)
		assert.Equal(t, "Bad Request", body.Status)
	})

	t.Run("webhook failure returns 502", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("CreateNote", mock.Anything, "hello").
			Return(entities.NoteView{}, &app.NotificationError{Err: errors.New("connection refused")})

		fiberApp := setupTestApp(service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/", strings.NewReader(`{"text":"hello"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		body := decodeErrorResponse(t, resp)
		assert.Equal(t, http.StatusBadGateway, body.ErrorCode)
		assert.Contains(t, body.ErrorMsg, "webhook")
	})

	t.Run("malformed body returns 400 without calling service", func(t *testing.T) {
		service := new(mockNoteService)
		fiberApp := setupTestApp(service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/", strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		service.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything)
	})
}

func TestListNotesHandler(t *testing.T) {
	t.Run("defaults are applied when parameters are absent", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("ListNotes", mock.Anything, "", "asc", 0, 50).
			Return([]entities.NoteView{{ID: 1, Text: "first", Time: "2025-01-15 12:30:45"}}, nil)

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		service.AssertExpectations(t)
	})

	t.Run("query parameters are forwarded", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("ListNotes", mock.Anything, "Europe/Moscow", "desc", 2, 10).
			Return([]entities.NoteView{{ID: 5, Text: "fifth", Time: "2025-01-15 15:30:45"}}, nil)

		fiberApp := setupTestApp(service)

		target := "/api/v1/notes/?tz=Europe%2FMoscow&order=desc&pageNumber=2&pageSize=10"
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":5,"text":"fifth","time":"2025-01-15 15:30:45"}]`, string(payload))
		service.AssertExpectations(t)
	})

	t.Run("non-numeric page number returns 400 without calling service", func(t *testing.T) {
		service := new(mockNoteService)
		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/?pageNumber=abc", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		service.AssertNotCalled(t, "ListNotes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty page maps to 400 with page number in message", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("ListNotes", mock.Anything, "", "asc", 99, 50).
			Return(nil, &app.EmptyPageError{Page: 99})

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/?pageNumber=99", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeErrorResponse(t, resp)
		assert.Contains(t, body.ErrorMsg, "99")
	})

	t.Run("unknown timezone maps to 400", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("ListNotes", mock.Anything, "Mars/Olympus", "asc", 0, 50).
			Return(nil, app.ErrInvalidTimezone)

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/?tz=Mars%2FOlympus", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("ListNotes", mock.Anything, "", "asc", 0, 50).
			Return(nil, errors.New("connection reset"))

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		body := decodeErrorResponse(t, resp)
		assert.Equal(t, "Internal server error", body.ErrorMsg)
	})
}

func TestGetNoteHandler(t *testing.T) {
	t.Run("existing note is returned", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("GetNoteByID", mock.Anything, int64(7)).
			Return(entities.NoteView{ID: 7, Text: "seventh", Time: "2025-01-15 12:30:45"}, nil)

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/7", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":7,"text":"seventh","time":"2025-01-15 12:30:45"}`, string(payload))
	})

	t.Run("missing note returns 404 with id in message", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("GetNoteByID", mock.Anything, int64(42)).
			Return(entities.NoteView{}, app.ErrNoteNotFound)

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/42", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeErrorResponse(t, resp)
		assert.Equal(t, "Note with id 42 not found", body.ErrorMsg)
		assert.Equal(t, "Not Found", body.Status)
	})

	t.Run("non-numeric id returns 400 without calling service", func(t *testing.T) {
		service := new(mockNoteService)
		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/abc", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		service.AssertNotCalled(t, "GetNoteByID", mock.Anything, mock.Anything)
	})
}

func TestSearchNotesHandler(t *testing.T) {
	t.Run("substring is forwarded and matches returned", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("SearchNotes", mock.Anything, "milk").
			Return([]entities.NoteView{{ID: 2, Text: "buy MILK", Time: "2025-01-15 12:30:45"}}, nil)

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/search?text=milk", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":2,"text":"buy MILK","time":"2025-01-15 12:30:45"}]`, string(payload))
		service.AssertExpectations(t)
	})

	t.Run("no matches produce an empty array", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("SearchNotes", mock.Anything, "nothing").
			Return([]entities.NoteView{}, nil)

		fiberApp := setupTestApp(service)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notes/search?text=nothing", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(payload))
	})
}

func TestHealthRoute(t *testing.T) {
	fiberApp := setupTestApp(new(mockNoteService))

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	fiberApp := setupTestApp(new(mockNoteService))

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/v2/other", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
