package mock

import (
	"context"

	"github.com/edikoyo/jamhub"
)

type ActivityStore struct {
	AddLogFn func(ctx context.Context, userId jamhub.UserId, activity jamhub.Activity) error

	ByUserIdFn func(ctx context.Context, userId jamhub.UserId) ([]jamhub.ActivityLog, error)
}

func (s ActivityStore) AddLog(ctx context.Context, userId jamhub.UserId, activity jamhub.Activity) error {
	return s.AddLogFn(ctx, userId, activity)
}

func (s ActivityStore) ByUserId(ctx context.Context, userId jamhub.UserId) ([]jamhub.ActivityLog, error) {
	return s.ByUserIdFn(ctx, userId)
}
