package jamhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImagePolicy(t *testing.T) {
	assert := assert.New(t)

	prod := Config{Mode: ModeProd}.Images()
	dev := Config{Mode: ModeDev}.Images()

	cases := []struct {
		url  string
		prod bool
		dev  bool
	}{
		{url: "https://cdn.edikoyo.com/img.png", prod: true, dev: true},
		{url: "https://anywhere.example/img.png", prod: true, dev: true},
		{url: "http://localhost:3005/uploads/img.png", prod: false, dev: true},
		{url: "http://some.host/img.png", prod: false, dev: true},
		{url: "ftp://some.host/img.png", prod: false, dev: false},
		{url: "not a url at all ://", prod: false, dev: false},
		{url: "", prod: false, dev: false},
	}
	for _, c := range cases {
		assert.Equal(c.prod, prod.Allows(c.url), "prod: %s", c.url)
		assert.Equal(c.dev, dev.Allows(c.url), "dev: %s", c.url)
	}
}
