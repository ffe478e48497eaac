// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"sendnotes/pkg/logger"
)

// RequestContextKey - ключ Locals, под которым хранится контекст запроса.
const RequestContextKey = "requestContext"

// HeaderRequestID - заголовок с идентификатором запроса от клиента.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware создает промежуточное ПО, назначающее каждому запросу
// идентификатор и контекст с ним. Идентификатор из заголовка сохраняется,
// отсутствующий - генерируется.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(RequestContextKey, requestCtx)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}

		return ctx.Next()
	}
}
