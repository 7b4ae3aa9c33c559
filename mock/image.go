package mock

import (
	"context"
)

type ImageStore struct {
	SaveFn func(ctx context.Context, filename string, content []byte) (string, error)
}

func (s ImageStore) Save(ctx context.Context, filename string, content []byte) (string, error) {
	return s.SaveFn(ctx, filename, content)
}
