package rest

import (
	"github.com/edikoyo/jamhub"
	"github.com/gofiber/fiber/v2"
)

func RequirePermissions(permission jamhub.PermissionName) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals(userLocalsKey).(jamhub.User)
		if !ok {
			return fiber.ErrUnauthorized
		}
		if user.Roles.Access(permission) != jamhub.AccessAllowed {
			return fiber.ErrUnauthorized
		}
		return nil
	}
}
