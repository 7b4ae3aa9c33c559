package mock

import (
	"context"

	"github.com/edikoyo/jamhub"
)

type SessionStore struct {
	RegisterNewFn func(ctx context.Context, userId jamhub.UserId, ip string, userAgent string) (jamhub.Session, error)

	ExistsFn func(token string) (bool, error)

	AcquireAndRefreshFn func(ctx context.Context, token string, ip string, userAgent string) (jamhub.Session, error)

	InvalidateByAuthTokenFn func(authToken string) error
}

func (s SessionStore) RegisterNew(ctx context.Context, userId jamhub.UserId, ip string, userAgent string) (jamhub.Session, error) {
	return s.RegisterNewFn(ctx, userId, ip, userAgent)
}

func (s SessionStore) Exists(token string) (bool, error) {
	return s.ExistsFn(token)
}

func (s SessionStore) AcquireAndRefresh(ctx context.Context, token string, ip string, userAgent string) (jamhub.Session, error) {
	return s.AcquireAndRefreshFn(ctx, token, ip, userAgent)
}

func (s SessionStore) InvalidateByAuthToken(authToken string) error {
	return s.InvalidateByAuthTokenFn(authToken)
}
