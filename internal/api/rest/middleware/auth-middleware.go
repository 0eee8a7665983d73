package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skilledwork/worker_service/internal/helper"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) Authorization header
		tokenStr := strings.TrimSpace(ctx.Get("Authorization"))

		// 2) fallback to cookie
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Cookies("access_token"))
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "please authenticate",
			})
		}

		ctx.Locals("userID", claims.UserID)
		ctx.Locals("role", claims.Role)
		ctx.Locals("user", claims)
		return ctx.Next()
	}
}

func RequireRole(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(ctx *fiber.Ctx) error {
		role, ok := ctx.Locals("role").(string)
		if !ok || role == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "please authenticate",
			})
		}

		if !allowedSet[strings.ToLower(role)] {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied: insufficient role",
			})
		}

		return ctx.Next()
	}
}
