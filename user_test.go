package jamhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		name string
		slug string
	}{
		{name: "Ann", slug: "ann"},
		{name: "Ann Arbor", slug: "ann-arbor"},
		{name: "  Spaced  Out  ", slug: "spaced-out"},
		{name: "mixed_CASE-99", slug: "mixed-case-99"},
		{name: "!!!", slug: ""},
		{name: "ęàéç", slug: ""},
		{name: "trailing!", slug: "trailing"},
	}
	for _, c := range cases {
		assert.Equal(c.slug, Slugify(c.name), "name: %s", c.name)
	}
}
