package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/edikoyo/jamhub"
	"github.com/edikoyo/jamhub/inmem"
	"github.com/edikoyo/jamhub/persistent"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/buntdb"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *inmem.UserStore, *persistent.SessionStore) {
	t.Helper()

	bunt, err := buntdb.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = bunt.Close()
	})

	userStore := inmem.NewUserStore()
	activityStore := inmem.NewActivityStore()
	sessionStore := &persistent.SessionStore{Buntdb: bunt, ActivityStore: &activityStore}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	authController := AuthController{UserStore: &userStore, SessionStore: sessionStore}
	authController.InstallTo(app)
	return app, &userStore, sessionStore
}

func postJson(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestAuthRegisterLoginFlow(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	app, userStore, _ := newAuthTestApp(t)

	name := gofakeit.Name()
	email := gofakeit.Email()

	resp := postJson(t, app, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "jammer-tier-password",
	})
	defer resp.Body.Close()
	assert.Equal(fiber.StatusCreated, resp.StatusCode)

	var created struct {
		UserId      int64  `json:"userId"`
		Slug        string `json:"slug"`
		AccessToken string `json:"accessToken"`
		ExpiresAt   int64  `json:"expiresAt"`
	}
	assert.NoError(json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(created.AccessToken)
	assert.Equal(jamhub.Slugify(name), created.Slug)

	user, err := userStore.BySlug(ctx, created.Slug)
	if assert.NoError(err) {
		assert.Equal(email, user.Email)
	}

	// duplicate email
	resp = postJson(t, app, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "another-password",
	})
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(fiber.StatusConflict, resp.StatusCode)
	assert.Equal(JsonErrorMessageResponse("email taken"), string(body))

	// login with right and wrong credentials
	resp = postJson(t, app, "/auth/login", map[string]string{
		"email":    email,
		"password": "jammer-tier-password",
	})
	defer resp.Body.Close()
	assert.Equal(fiber.StatusCreated, resp.StatusCode)

	resp = postJson(t, app, "/auth/login", map[string]string{
		"email":    email,
		"password": "not the password",
	})
	defer resp.Body.Close()
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(JsonErrorMessageResponse("bad credentials"), string(body))
}

func TestAuthRegisterValidation(t *testing.T) {
	assert := assert.New(t)

	app, _, _ := newAuthTestApp(t)

	cases := []struct {
		payload map[string]string
		message string
	}{
		{payload: map[string]string{"email": "a@b.c", "password": "12345678"}, message: "no name"},
		{payload: map[string]string{"name": "Ann", "password": "12345678"}, message: "no email"},
		{payload: map[string]string{"name": "Ann", "email": "a@b.c", "password": "short"}, message: "password too short"},
	}
	for _, c := range cases {
		resp := postJson(t, app, "/auth/register", c.payload)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(fiber.StatusBadRequest, resp.StatusCode, c.message)
		assert.Equal(JsonErrorMessageResponse(c.message), string(body))
	}
}

func TestAuthLogout(t *testing.T) {
	assert := assert.New(t)

	app, _, sessionStore := newAuthTestApp(t)

	resp := postJson(t, app, "/auth/register", map[string]string{
		"name":     "Log Out",
		"email":    "out@edikoyo.com",
		"password": "jammer-tier-password",
	})
	defer resp.Body.Close()
	var created struct {
		AccessToken string `json:"accessToken"`
	}
	assert.NoError(json.NewDecoder(resp.Body).Decode(&created))

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+created.AccessToken)
	logoutResp, err := app.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer logoutResp.Body.Close()
	assert.Equal(fiber.StatusOK, logoutResp.StatusCode)

	exists, err := sessionStore.Exists(created.AccessToken)
	assert.NoError(err)
	assert.False(exists)

	// token no longer usable
	req = httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+created.AccessToken)
	logoutResp, err = app.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer logoutResp.Body.Close()
	assert.Equal(fiber.StatusUnauthorized, logoutResp.StatusCode)
}
