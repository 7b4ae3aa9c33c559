package rest

import (
	"errors"
	"fmt"

	"github.com/edikoyo/jamhub"
	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Store         jamhub.UserStore
	ActivityStore jamhub.ActivityStore
}

func (c *UserController) InstallTo(authorizer fiber.Handler, app *fiber.App) {
	app.Get("/self", CombineHandlers(authorizer, c.serveSelf))
	app.Put("/users/:slug", CombineHandlers(authorizer, c.serveUpdateProfile))
	app.Get("/users/:slug", c.serveProfile)
}

// UserResponse mirrors what the settings editor expects: bio and picture
// fields are null when unset, never "".
type UserResponse struct {
	Slug           string  `json:"slug"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
	BannerPicture  *string `json:"bannerPicture"`
}

func newUserResponse(u jamhub.User, includeEmail bool) UserResponse {
	r := UserResponse{
		Slug:           u.Slug,
		Name:           u.Name,
		Bio:            nullable(u.Bio),
		ProfilePicture: nullable(u.ProfilePicture),
		BannerPicture:  nullable(u.BannerPicture),
	}
	if includeEmail {
		r.Email = u.Email
	}
	return r
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (c *UserController) serveSelf(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(jamhub.User)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return ctx.JSON(newUserResponse(user, true))
}

func (c *UserController) serveProfile(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")
	if slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no slug")
	}
	user, err := c.Store.BySlug(ctx.Context(), slug)
	if err != nil {
		if errors.Is(err, jamhub.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		} else {
			return fmt.Errorf("get user by slug: %w", err)
		}
	}
	return ctx.JSON(newUserResponse(user, false))
}

func (c *UserController) serveUpdateProfile(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(jamhub.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	slug := ctx.Params("slug")
	if slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no slug")
	}
	// users edit their own profile, nobody else's
	if slug != user.Slug {
		return fiber.ErrForbidden
	}

	body := struct {
		Slug           string `json:"slug"`
		Name           string `json:"name"`
		Bio            string `json:"bio"`
		ProfilePicture string `json:"profilePicture"`
		BannerPicture  string `json:"bannerPicture"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Slug != "" && body.Slug != slug {
		return fiber.NewError(fiber.StatusBadRequest, "slug mismatch")
	}
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no name")
	}

	updated, err := c.Store.UpdateProfile(ctx.Context(), jamhub.ProfileUpdate{
		Slug: slug,
		Name: body.Name,
		// sanitized client side too, never trusted
		Bio:            jamhub.SanitizeBio(body.Bio),
		ProfilePicture: body.ProfilePicture,
		BannerPicture:  body.BannerPicture,
	})
	if err != nil {
		if errors.Is(err, jamhub.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		} else {
			return fmt.Errorf("update profile: %w", err)
		}
	}

	if c.ActivityStore != nil {
		err = c.ActivityStore.AddLog(ctx.Context(), user.Id, jamhub.Activity{
			Name: "profile_updated",
			Data: map[string]interface{}{"slug": slug},
		})
		if err != nil {
			return fmt.Errorf("add profile_updated activity log: %w", err)
		}
	}

	return ctx.JSON(DataResponse{Data: newUserResponse(updated, true)})
}
