// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"sendnotes/internal/notes/adapters/http/middleware"
	"sendnotes/internal/notes/adapters/http/notes"
	"sendnotes/internal/notes/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, noteService api.NoteService) {
	notesHandler := notes.NewHandler(noteService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Маршруты заметок. "/search" регистрируется до "/:note_id", иначе
	// параметрический маршрут перехватит его.
	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Get("/search", notesHandler.SearchNotes)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
