package mock

import (
	"context"
	"time"

	"github.com/edikoyo/jamhub"
)

type JamStore struct {
	BySlugFn func(ctx context.Context, slug string) (jamhub.Jam, error)

	UpcomingFn func(ctx context.Context, now time.Time) ([]jamhub.Jam, error)

	CurrentFn func(ctx context.Context, now time.Time) (jamhub.Jam, error)
}

func (s JamStore) BySlug(ctx context.Context, slug string) (jamhub.Jam, error) {
	return s.BySlugFn(ctx, slug)
}

func (s JamStore) Upcoming(ctx context.Context, now time.Time) ([]jamhub.Jam, error) {
	return s.UpcomingFn(ctx, now)
}

func (s JamStore) Current(ctx context.Context, now time.Time) (jamhub.Jam, error) {
	return s.CurrentFn(ctx, now)
}
