package httpapi

import (
	"github.com/espaceform/formation_portal/internal/model"
	"github.com/gofiber/fiber/v2"
)

// AuthContext read-only снимок текущего пользователя.
// Аутентификацию выполняет внешний шлюз, портал получает уже
// проверенные заголовки X-User-Id / X-User-Role.
type AuthContext struct {
	UserID string
	Role   model.UserRole
}

const authLocalsKey = "auth"

// AuthContextMiddleware кладёт снимок пользователя в Locals запроса
func AuthContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := AuthContext{
			UserID: c.Get("X-User-Id"),
			Role:   model.UserRole(c.Get("X-User-Role")),
		}
		c.Locals(authLocalsKey, auth)
		return c.Next()
	}
}

// CurrentAuth достаёт снимок пользователя из запроса
func CurrentAuth(c *fiber.Ctx) AuthContext {
	if auth, ok := c.Locals(authLocalsKey).(AuthContext); ok {
		return auth
	}
	return AuthContext{}
}

// RequireAdmin пропускает только администраторов: расписания и слоты
// мутируют только они
func RequireAdmin(c *fiber.Ctx) error {
	if CurrentAuth(c).Role != model.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Accès réservé aux administrateurs",
		})
	}
	return c.Next()
}
