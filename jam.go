package jamhub

import (
	"context"
	"errors"
	"time"
)

var ErrJamNotFound = errors.New("jam not found")

// Jam is a scheduled game jam. The landing page shows the next one.
type Jam struct {
	Id       int64
	Slug     string
	Name     string
	Theme    string
	StartsAt time.Time
	EndsAt   time.Time
}

func (j Jam) Running(now time.Time) bool {
	return !now.Before(j.StartsAt) && now.Before(j.EndsAt)
}

type JamStore interface {
	BySlug(ctx context.Context, slug string) (Jam, error)

	// Upcoming lists jams that have not ended yet, soonest first.
	Upcoming(ctx context.Context, now time.Time) ([]Jam, error)

	// Current returns the running jam, or the next upcoming one when none
	// is running. ErrJamNotFound when the schedule is empty.
	Current(ctx context.Context, now time.Time) (Jam, error)
}
