package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/buckeye-it/ticket-autopilot/pkg/util"
)

const callerKey = "trigger_caller"

// TriggerMiddleware validates bearer tokens on run-trigger routes.
type TriggerMiddleware struct {
	tokens *TokenManager
}

// NewTriggerMiddleware constructs middleware.
func NewTriggerMiddleware(tokens *TokenManager) *TriggerMiddleware {
	return &TriggerMiddleware{tokens: tokens}
}

// Handle enforces authentication for trigger routes.
func (m *TriggerMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(callerKey, claims.Subject)
	return c.Next()
}

// Caller returns the authenticated trigger subject, if any.
func Caller(c *fiber.Ctx) string {
	caller, _ := c.Locals(callerKey).(string)
	return caller
}
