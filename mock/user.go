package mock

import (
	"context"

	"github.com/edikoyo/jamhub"
)

type UserStore struct {
	RegisterFn func(ctx context.Context, r jamhub.Registration) (jamhub.User, error)

	ByIdFn func(ctx context.Context, userId jamhub.UserId) (jamhub.User, error)

	BySlugFn func(ctx context.Context, slug string) (jamhub.User, error)

	AuthenticateFn func(ctx context.Context, email string, password string) (jamhub.User, error)

	UpdateProfileFn func(ctx context.Context, update jamhub.ProfileUpdate) (jamhub.User, error)
}

func (s UserStore) Register(ctx context.Context, r jamhub.Registration) (jamhub.User, error) {
	return s.RegisterFn(ctx, r)
}

func (s UserStore) ById(ctx context.Context, userId jamhub.UserId) (jamhub.User, error) {
	return s.ByIdFn(ctx, userId)
}

func (s UserStore) BySlug(ctx context.Context, slug string) (jamhub.User, error) {
	return s.BySlugFn(ctx, slug)
}

func (s UserStore) Authenticate(ctx context.Context, email string, password string) (jamhub.User, error) {
	return s.AuthenticateFn(ctx, email, password)
}

func (s UserStore) UpdateProfile(ctx context.Context, update jamhub.ProfileUpdate) (jamhub.User, error) {
	return s.UpdateProfileFn(ctx, update)
}
