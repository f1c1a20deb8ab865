package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/jhoicas/Cilindros-api/pkg/logger"
)

// HeaderRequestID cabecera de correlación; se respeta la que envíe el cliente.
const HeaderRequestID = "X-Request-ID"

// HTTPObserver recibe cada petición ya respondida (métricas).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra método, ruta, estado y latencia de cada petición.
// observer puede ser nil.
func RequestLogger(log *logger.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		elapsed := time.Since(start)
		route := c.Route().Path

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http")

		if observer != nil {
			observer.ObserveHTTP(c.Method(), route, status, elapsed)
		}
		return err
	}
}

// UseGlobalMiddleware registra log de acceso y recover. Debe llamarse antes que swagger y Router.
func UseGlobalMiddleware(app *fiber.App, log *logger.Logger, observer HTTPObserver) {
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestLogger(log.Named("http"), observer))
	app.Use(recover.New())
}
