package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cilindros-api/internal/application/dto"
	"github.com/jhoicas/Cilindros-api/internal/domain/entity"
	"github.com/jhoicas/Cilindros-api/pkg/jwt"
)

// LocalActor clave en c.Locals del usuario que hace la petición.
const LocalActor = "actor"

// AuthMiddleware valida el Bearer Token JWT y deja el usuario (id_user, usuario) en c.Locals.
// Con jwtSecret vacío no hay autenticación y todas las peticiones usan fallback.
func AuthMiddleware(jwtSecret string, fallback entity.Actor) fiber.Handler {
	if jwtSecret == "" {
		return func(c *fiber.Ctx) error {
			c.Locals(LocalActor, fallback)
			return c.Next()
		}
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token inválido o expirado"})
		}
		c.Locals(LocalActor, entity.Actor{ID: claims.UserID, Username: claims.Username})
		return c.Next()
	}
}

// GetActor devuelve el usuario del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) entity.Actor {
	a, _ := c.Locals(LocalActor).(entity.Actor)
	return a
}
