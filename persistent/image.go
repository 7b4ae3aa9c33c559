package persistent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edikoyo/jamhub"
	"github.com/google/uuid"
)

// DiskImageStore writes uploads into a flat directory served statically by
// the api server. Names are random so uploads never collide or overwrite.
type DiskImageStore struct {
	Dir     string
	BaseURL string
}

var _ jamhub.ImageStore = (*DiskImageStore)(nil)

func (s *DiskImageStore) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + safeExt(filename)
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.BaseURL + "/uploads/" + name, nil
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return ext
	default:
		return ""
	}
}
