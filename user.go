package jamhub

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("bad credentials")
)

type UserId int64

type User struct {
	Id        UserId
	CreatedAt time.Time

	// Slug is the stable public identifier of the user. It never changes
	// after registration, unlike Name.
	Slug  string
	Name  string
	Email string

	// Bio holds sanitized rich text. May be empty.
	Bio string

	// Picture urls. Empty string means no picture set.
	ProfilePicture string
	BannerPicture  string

	Roles Roles
}

type Registration struct {
	Name     string
	Email    string
	Password string
}

// ProfileUpdate is the editable subset of User submitted by the settings
// editor. Email is deliberately not part of it: the site shows the email in
// the editor but never persists changes to it through this flow.
type ProfileUpdate struct {
	Slug           string
	Name           string
	Bio            string
	ProfilePicture string
	BannerPicture  string
}

type UserStore interface {
	Register(ctx context.Context, r Registration) (User, error)

	ById(ctx context.Context, userId UserId) (User, error)

	BySlug(ctx context.Context, slug string) (User, error)

	// Authenticate verifies email+password and returns the matching user.
	// Returns ErrBadCredentials when either does not match.
	Authenticate(ctx context.Context, email string, password string) (User, error)

	// UpdateProfile persists the editable fields keyed by update.Slug and
	// returns the authoritative record after the write.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error)
}

// Slugify derives a url-safe slug from a display name. Non-alphanumeric runs
// collapse to a single dash. Uniqueness is the store's problem.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
