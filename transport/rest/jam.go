package rest

import (
	"errors"
	"fmt"
	"time"

	"github.com/edikoyo/jamhub"
	"github.com/gofiber/fiber/v2"
)

type JamController struct {
	Store jamhub.JamStore
}

func (c *JamController) InstallTo(app *fiber.App) {
	app.Get("/jams", c.serveUpcoming)
	app.Get("/jams/current", c.serveCurrent)
}

type JamResponse struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Theme    string `json:"theme,omitempty"`
	StartsAt int64  `json:"startsAt"`
	EndsAt   int64  `json:"endsAt"`
	Running  bool   `json:"running"`
}

func newJamResponse(j jamhub.Jam, now time.Time) JamResponse {
	return JamResponse{
		Slug:     j.Slug,
		Name:     j.Name,
		Theme:    j.Theme,
		StartsAt: j.StartsAt.Unix(),
		EndsAt:   j.EndsAt.Unix(),
		Running:  j.Running(now),
	}
}

func (c *JamController) serveUpcoming(ctx *fiber.Ctx) error {
	now := time.Now().UTC()
	jams, err := c.Store.Upcoming(ctx.Context(), now)
	if err != nil {
		return fmt.Errorf("upcoming jams: %w", err)
	}

	mapped := make([]JamResponse, len(jams))
	for i, j := range jams {
		mapped[i] = newJamResponse(j, now)
	}
	return ctx.JSON(mapped)
}

func (c *JamController) serveCurrent(ctx *fiber.Ctx) error {
	now := time.Now().UTC()
	jam, err := c.Store.Current(ctx.Context(), now)
	if err != nil {
		if errors.Is(err, jamhub.ErrJamNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no jam scheduled")
		} else {
			return fmt.Errorf("current jam: %w", err)
		}
	}
	return ctx.JSON(newJamResponse(jam, now))
}
