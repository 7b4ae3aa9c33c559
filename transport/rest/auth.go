package rest

import (
	"errors"
	"fmt"

	"github.com/edikoyo/jamhub"
	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	UserStore    jamhub.UserStore
	SessionStore jamhub.SessionStore
}

func (c *AuthController) InstallTo(app *fiber.App) {
	app.Post("/auth/register", c.serveRegister)
	app.Post("/auth/login", c.serveLogin)
	app.Post("/auth/logout", c.logoutHandler())
}

func (c *AuthController) serveRegister(ctx *fiber.Ctx) error {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no name")
	}
	if body.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no email")
	}
	if len(body.Password) < 8 {
		return fiber.NewError(fiber.StatusBadRequest, "password too short")
	}

	user, err := c.UserStore.Register(ctx.Context(), jamhub.Registration{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		if errors.Is(err, jamhub.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusConflict, "email taken")
		} else {
			return fmt.Errorf("user register: %w", err)
		}
	}
	return c.serveNewSession(ctx, user)
}

func (c *AuthController) serveLogin(ctx *fiber.Ctx) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	user, err := c.UserStore.Authenticate(ctx.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, jamhub.ErrBadCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "bad credentials")
		} else {
			return fmt.Errorf("user authenticate: %w", err)
		}
	}
	return c.serveNewSession(ctx, user)
}

func (c *AuthController) serveNewSession(ctx *fiber.Ctx, user jamhub.User) error {
	session, err := c.SessionStore.RegisterNew(ctx.Context(), user.Id, ctx.IP(),
		string(ctx.Request().Header.UserAgent()))
	if err != nil {
		return fmt.Errorf("session register new: %w", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(map[string]interface{}{
		"userId":      session.UserId,
		"slug":        user.Slug,
		"accessToken": session.Token,
		"expiresAt":   session.ExpiresAt.Unix(),
	})
}

func (c *AuthController) logoutHandler() fiber.Handler {
	return CombineHandlers(RequestAuthorizer(c.SessionStore, c.UserStore), func(ctx *fiber.Ctx) error {
		session := ctx.Locals(sessionLocalsKey).(jamhub.Session)
		return c.SessionStore.InvalidateByAuthToken(session.Token)
	})
}
