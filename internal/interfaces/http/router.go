package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Commands       MovementCommands
	Queries        MovementQueries
	Terceros       TerceroQueries
	Validator      *RequestValidator
	MetricsHandler fiber.Handler // nil: sin /metrics
	JWTSecret      string
	DefaultActor   entity.Actor
	ServiceName    string
}

// Router registra las rutas de la API. El middleware global se instala antes con UseGlobalMiddleware.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	// Con JWTSecret vacío el middleware solo asigna el usuario por defecto.
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret, deps.DefaultActor))

	movimientos := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.Commands, deps.Queries, deps.Validator)
	movimientos.Get("/", movementHandler.List)
	movimientos.Get("/consecutivo", movementHandler.Consecutivo)
	movimientos.Get("/export", movementHandler.Export)
	movimientos.Get("/:docto/pdf", movementHandler.Voucher)
	movimientos.Get("/:docto", movementHandler.Show)
	movimientos.Post("/", movementHandler.Store)

	terceros := protected.Group("/terceros")
	terceroHandler := NewTerceroHandler(deps.Terceros)
	terceros.Get("/", terceroHandler.List)
	terceros.Get("/:codcli", terceroHandler.Show)
}
