// Package editor drives a profile settings session against the rest api:
// guard on a stored credential, load the caller's profile, mutate a local
// draft, upload images per field and submit the draft back.
package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/edikoyo/jamhub"
	"github.com/sirupsen/logrus"
)

// TokenSource reads the current authentication credential. Reports false
// when the caller is not logged in.
type TokenSource func() (string, bool)

var (
	ErrNotAuthenticated = errors.New("editor: not authenticated")
	ErrNotReady         = errors.New("editor: session not ready")
	ErrNoName           = errors.New("editor: name must not be empty")
	ErrSubmitInFlight   = errors.New("editor: submit already in flight")
	ErrUploadInFlight   = errors.New("editor: upload already in flight for this field")
)

type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateReady
	StateFailed
)

type ImageField int

const (
	FieldProfilePicture ImageField = iota
	FieldBannerPicture
)

type UploadState int

const (
	UploadIdle UploadState = iota
	UploadBusy
	UploadSucceeded
	UploadFailed
)

// Draft holds the unsaved copy of the editable profile fields. Image urls
// and bio use "" where the server sent null.
type Draft struct {
	Name           string
	Email          string
	Bio            string
	ProfilePicture string
	BannerPicture  string
}

// Session owns the editor state. All exported methods lock, network calls
// run outside the lock so independent uploads may overlap.
type Session struct {
	Tokens   TokenSource
	Client   Client
	Notifier Notifier

	mutex      sync.Mutex
	state      State
	user       *Profile
	draft      Draft
	uploads    [2]UploadState
	submitting bool
	emailShown bool
}

func NewSession(tokens TokenSource, client Client, notifier Notifier) *Session {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Session{Tokens: tokens, Client: client, Notifier: notifier}
}

// Activate guards on the stored credential and, when present, loads the
// caller's profile. Run once per navigation to the settings route.
func (s *Session) Activate() error {
	if _, ok := s.Tokens(); !ok {
		s.mutex.Lock()
		s.state = StateUnauthenticated
		s.user = nil
		s.mutex.Unlock()
		return ErrNotAuthenticated
	}
	return s.Load()
}

// Load fetches the authenticated profile and seeds the draft from it. A
// failed load clears the profile and leaves the session in StateFailed,
// from which Load may be called again.
func (s *Session) Load() error {
	token, ok := s.Tokens()
	if !ok {
		s.mutex.Lock()
		s.state = StateUnauthenticated
		s.user = nil
		s.mutex.Unlock()
		return ErrNotAuthenticated
	}

	s.mutex.Lock()
	s.state = StateLoading
	s.mutex.Unlock()

	profile, err := s.Client.GetSelf(token)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err != nil {
		s.state = StateFailed
		s.user = nil
		logrus.WithError(err).Warn("Could not load profile.")
		return fmt.Errorf("get self: %w", err)
	}
	s.user = &profile
	s.draft = seedDraft(profile)
	s.uploads = [2]UploadState{}
	s.state = StateReady
	return nil
}

func seedDraft(p Profile) Draft {
	return Draft{
		Name:           p.Name,
		Email:          p.Email,
		Bio:            orEmpty(p.Bio),
		ProfilePicture: orEmpty(p.ProfilePicture),
		BannerPicture:  orEmpty(p.BannerPicture),
	}
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Session) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

func (s *Session) Draft() Draft {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.draft
}

// User returns the last authoritative profile, false when none is loaded.
func (s *Session) User() (Profile, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.user == nil {
		return Profile{}, false
	}
	return *s.user, true
}

func (s *Session) UploadState(field ImageField) UploadState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.uploads[field]
}

func (s *Session) SetName(name string) error {
	return s.mutate(func(d *Draft) { d.Name = name })
}

func (s *Session) SetEmail(email string) error {
	return s.mutate(func(d *Draft) { d.Email = email })
}

func (s *Session) SetBio(bio string) error {
	return s.mutate(func(d *Draft) { d.Bio = bio })
}

func (s *Session) mutate(change func(*Draft)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	change(&s.draft)
	return nil
}

// ToggleEmail flips whether the email field is shown in the form. Display
// state only, it never reaches the update payload.
func (s *Session) ToggleEmail() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.emailShown = !s.emailShown
	return s.emailShown
}

func (s *Session) EmailShown() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.emailShown
}

// Upload sends one image and patches the targeted draft field on success.
// Each field has its own slot, so both pictures may upload at the same
// time, but a second upload to a busy field is rejected locally.
func (s *Session) Upload(field ImageField, filename string, content []byte) error {
	token, ok := s.Tokens()
	if !ok {
		return ErrNotAuthenticated
	}

	s.mutex.Lock()
	if s.state != StateReady {
		s.mutex.Unlock()
		return ErrNotReady
	}
	if s.uploads[field] == UploadBusy {
		s.mutex.Unlock()
		return ErrUploadInFlight
	}
	s.uploads[field] = UploadBusy
	s.mutex.Unlock()

	url, message, err := s.Client.UploadImage(token, filename, content)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err != nil {
		s.uploads[field] = UploadFailed
		logrus.WithError(err).WithField("field", field).Warn("Could not upload image.")
		s.Notifier.Error("Failed to upload image")
		return fmt.Errorf("upload image: %w", err)
	}
	switch field {
	case FieldProfilePicture:
		s.draft.ProfilePicture = url
	case FieldBannerPicture:
		s.draft.BannerPicture = url
	}
	s.uploads[field] = UploadSucceeded
	s.Notifier.Success(message)
	return nil
}

// RemoveImage clears the targeted draft field. Local only, no network call.
func (s *Session) RemoveImage(field ImageField) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	switch field {
	case FieldProfilePicture:
		s.draft.ProfilePicture = ""
	case FieldBannerPicture:
		s.draft.BannerPicture = ""
	}
	s.uploads[field] = UploadIdle
	return nil
}

// Submit persists the draft as the caller's profile. The bio is sanitized
// before transmission and the email field never leaves the client. On
// success the server record becomes the authoritative profile and reseeds
// the draft; on failure the draft is kept so the user may retry.
func (s *Session) Submit() error {
	token, ok := s.Tokens()
	if !ok {
		return ErrNotAuthenticated
	}

	s.mutex.Lock()
	if s.state != StateReady || s.user == nil {
		s.mutex.Unlock()
		return ErrNotReady
	}
	if s.draft.Name == "" {
		s.mutex.Unlock()
		s.Notifier.Error("You need to enter a name")
		return ErrNoName
	}
	if s.submitting {
		s.mutex.Unlock()
		return ErrSubmitInFlight
	}
	s.submitting = true
	update := jamhub.ProfileUpdate{
		Slug:           s.user.Slug,
		Name:           s.draft.Name,
		Bio:            jamhub.SanitizeBio(s.draft.Bio),
		ProfilePicture: s.draft.ProfilePicture,
		BannerPicture:  s.draft.BannerPicture,
	}
	s.mutex.Unlock()

	updated, err := s.Client.UpdateUser(token, update)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.submitting = false
	if err != nil {
		logrus.WithError(err).Warn("Could not update settings.")
		s.Notifier.Error("Failed to update settings")
		return fmt.Errorf("update user: %w", err)
	}
	s.user = &updated
	s.draft = seedDraft(updated)
	s.Notifier.Success("Changed settings")
	return nil
}

// Reset restores the draft from the last authoritative profile, discarding
// unsaved edits.
func (s *Session) Reset() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.user == nil {
		return ErrNotReady
	}
	s.draft = seedDraft(*s.user)
	s.uploads = [2]UploadState{}
	return nil
}
