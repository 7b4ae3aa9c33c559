package persistent

import (
	"context"
	"testing"

	"github.com/edikoyo/jamhub"
	"github.com/edikoyo/jamhub/pgdb"
	"github.com/stretchr/testify/assert"
)

func TestUserRegisterAuthenticate(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := pgdb.OpenTest(ctx)
	defer db.Close()
	store := UserStore{DB: db}

	user, err := store.Register(ctx, jamhub.Registration{
		Name:     "Ann Arbor",
		Email:    "ann@edikoyo.com",
		Password: "correct horse",
	})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("ann-arbor", user.Slug)
	assert.Equal("Ann Arbor", user.Name)
	assert.Equal("ann@edikoyo.com", user.Email)
	assert.Empty(user.Bio)
	assert.Empty(user.ProfilePicture)

	_, err = store.Register(ctx, jamhub.Registration{
		Name:     "Ann Arbor",
		Email:    "ann@edikoyo.com",
		Password: "whatever",
	})
	assert.ErrorIs(err, jamhub.ErrEmailTaken)

	// same display name, different email: slug must not collide
	other, err := store.Register(ctx, jamhub.Registration{
		Name:     "Ann Arbor",
		Email:    "ann2@edikoyo.com",
		Password: "whatever",
	})
	if assert.NoError(err) {
		assert.Equal("ann-arbor-2", other.Slug)
	}

	authed, err := store.Authenticate(ctx, "ann@edikoyo.com", "correct horse")
	if assert.NoError(err) {
		assert.Equal(user.Id, authed.Id)
	}
	_, err = store.Authenticate(ctx, "ann@edikoyo.com", "wrong")
	assert.ErrorIs(err, jamhub.ErrBadCredentials)
	_, err = store.Authenticate(ctx, "nobody@edikoyo.com", "correct horse")
	assert.ErrorIs(err, jamhub.ErrBadCredentials)
}

func TestUserUpdateProfile(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := pgdb.OpenTest(ctx)
	defer db.Close()
	store := UserStore{DB: db}

	user, err := store.Register(ctx, jamhub.Registration{
		Name:     "Bo Update",
		Email:    "bo@edikoyo.com",
		Password: "secret",
	})
	if !assert.NoError(err) {
		return
	}

	updated, err := store.UpdateProfile(ctx, jamhub.ProfileUpdate{
		Slug:           user.Slug,
		Name:           "Bo Prime",
		Bio:            "<p>jams</p>",
		ProfilePicture: "https://cdn.edikoyo.com/a.png",
		BannerPicture:  "",
	})
	if !assert.NoError(err) {
		return
	}
	assert.Equal(user.Slug, updated.Slug)
	assert.Equal("Bo Prime", updated.Name)
	assert.Equal("<p>jams</p>", updated.Bio)
	assert.Equal("https://cdn.edikoyo.com/a.png", updated.ProfilePicture)
	assert.Empty(updated.BannerPicture)
	// email not part of the update payload
	assert.Equal("bo@edikoyo.com", updated.Email)

	reloaded, err := store.BySlug(ctx, user.Slug)
	if assert.NoError(err) {
		assert.Equal(updated, reloaded)
	}

	_, err = store.UpdateProfile(ctx, jamhub.ProfileUpdate{Slug: "missing-slug", Name: "x"})
	assert.ErrorIs(err, jamhub.ErrUserNotFound)
}
