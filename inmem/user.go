package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edikoyo/jamhub"
)

type UserStore struct {
	lastId    int64
	users     map[jamhub.UserId]jamhub.User
	passwords map[jamhub.UserId]string
	mutex     sync.RWMutex
}

func NewUserStore() UserStore {
	return UserStore{
		users:     map[jamhub.UserId]jamhub.User{},
		passwords: map[jamhub.UserId]string{},
	}
}

var _ jamhub.UserStore = (*UserStore)(nil)

func (s *UserStore) Register(ctx context.Context, r jamhub.Registration) (jamhub.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, u := range s.users {
		if u.Email == r.Email {
			return jamhub.User{}, jamhub.ErrEmailTaken
		}
	}

	s.lastId++
	uid := jamhub.UserId(s.lastId)
	user := jamhub.User{
		Id:        uid,
		CreatedAt: time.Now(),
		Slug:      s.freeSlug(jamhub.Slugify(r.Name)),
		Name:      r.Name,
		Email:     r.Email,
		Roles:     jamhub.Roles{},
	}
	s.users[uid] = user
	s.passwords[uid] = r.Password

	return user, nil
}

func (s *UserStore) freeSlug(base string) string {
	if base == "" {
		base = "jammer"
	}
	slug := base
	for i := 2; ; i++ {
		taken := false
		for _, u := range s.users {
			if u.Slug == slug {
				taken = true
				break
			}
		}
		if !taken {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *UserStore) ById(ctx context.Context, userId jamhub.UserId) (jamhub.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[userId]
	if !ok {
		return u, jamhub.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) BySlug(ctx context.Context, slug string) (jamhub.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if u.Slug == slug {
			return u, nil
		}
	}
	return jamhub.User{}, jamhub.ErrUserNotFound
}

func (s *UserStore) Authenticate(ctx context.Context, email string, password string) (jamhub.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for id, u := range s.users {
		if u.Email == email {
			if s.passwords[id] != password {
				return jamhub.User{}, jamhub.ErrBadCredentials
			}
			return u, nil
		}
	}
	return jamhub.User{}, jamhub.ErrBadCredentials
}

func (s *UserStore) UpdateProfile(ctx context.Context, update jamhub.ProfileUpdate) (jamhub.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for id, u := range s.users {
		if u.Slug == update.Slug {
			u.Name = update.Name
			u.Bio = update.Bio
			u.ProfilePicture = update.ProfilePicture
			u.BannerPicture = update.BannerPicture
			s.users[id] = u
			return u, nil
		}
	}
	return jamhub.User{}, jamhub.ErrUserNotFound
}

// Seed inserts a user verbatim, for tests that need full control of fields.
func (s *UserStore) Seed(user jamhub.User, password string) jamhub.User {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if user.Id == 0 {
		s.lastId++
		user.Id = jamhub.UserId(s.lastId)
	}
	s.users[user.Id] = user
	s.passwords[user.Id] = password
	return user
}
