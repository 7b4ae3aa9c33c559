package jamhub

import "net/url"

type Mode string

const (
	ModeDev  Mode = "DEV"
	ModeProd Mode = "PROD"
)

// Config is resolved once at startup and passed to everything that needs it.
// Nothing reads the environment after main has built this.
type Config struct {
	Mode Mode

	// Addr the api server listens on.
	Addr string

	// BaseURL is the public url of the api, e.g. https://edikoyo.com/api/v1.
	// Uploaded image urls are derived from it.
	BaseURL string

	PostgresDSN string

	// SessionDBPath is the buntdb file holding sessions.
	SessionDBPath string

	// UploadDir is where uploaded images land on disk.
	UploadDir string

	// StaticDir holds the landing page served at /.
	StaticDir string
}

func (c Config) Dev() bool {
	return c.Mode == ModeDev
}

func (c Config) Images() ImagePolicy {
	return ImagePolicy{AllowInsecure: c.Dev()}
}

// ImagePolicy decides which remote image urls the site will render.
// Https is always fine. Plain http (localhost included) only in dev.
type ImagePolicy struct {
	AllowInsecure bool
}

func (p ImagePolicy) Allows(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "https":
		return u.Host != ""
	case "http":
		return p.AllowInsecure && u.Host != ""
	default:
		return false
	}
}
