package jamhub

import "context"

// ImageStore persists uploaded image files and hands back the public url the
// profile fields reference.
type ImageStore interface {
	Save(ctx context.Context, filename string, content []byte) (url string, err error)
}
