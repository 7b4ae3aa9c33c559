package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/edikoyo/jamhub"
)

type ImageStore struct {
	lastId int64
	Files  map[string][]byte
	mutex  sync.Mutex
}

func NewImageStore() ImageStore {
	return ImageStore{Files: map[string][]byte{}}
}

var _ jamhub.ImageStore = (*ImageStore)(nil)

func (s *ImageStore) Save(ctx context.Context, filename string, content []byte) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastId++
	url := fmt.Sprintf("https://cdn.edikoyo.test/%d-%s", s.lastId, filename)
	s.Files[url] = content
	return url, nil
}
