package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edikoyo/jamhub"
)

type JamStore struct {
	jams  []jamhub.Jam
	mutex sync.RWMutex
}

func NewJamStore(jams ...jamhub.Jam) JamStore {
	return JamStore{jams: jams}
}

var _ jamhub.JamStore = (*JamStore)(nil)

func (s *JamStore) BySlug(ctx context.Context, slug string) (jamhub.Jam, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, j := range s.jams {
		if j.Slug == slug {
			return j, nil
		}
	}
	return jamhub.Jam{}, jamhub.ErrJamNotFound
}

func (s *JamStore) Upcoming(ctx context.Context, now time.Time) ([]jamhub.Jam, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	upcoming := make([]jamhub.Jam, 0, len(s.jams))
	for _, j := range s.jams {
		if j.EndsAt.After(now) {
			upcoming = append(upcoming, j)
		}
	}
	sort.Slice(upcoming, func(i, k int) bool {
		return upcoming[i].StartsAt.Before(upcoming[k].StartsAt)
	})
	return upcoming, nil
}

func (s *JamStore) Current(ctx context.Context, now time.Time) (jamhub.Jam, error) {
	upcoming, err := s.Upcoming(ctx, now)
	if err != nil {
		return jamhub.Jam{}, err
	}
	if len(upcoming) == 0 {
		return jamhub.Jam{}, jamhub.ErrJamNotFound
	}
	return upcoming[0], nil
}
