package jamhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBio(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		in  string
		out string
	}{
		{in: "", out: ""},
		{in: "plain text", out: "plain text"},
		{in: "<p>I make <strong>games</strong></p>", out: "<p>I make <strong>games</strong></p>"},
		{in: `<script>alert("pwn")</script>hello`, out: "hello"},
		{in: `<img src=x onerror=alert(1)>bio`, out: "<img src=\"x\">bio"},
		{in: `<a href="javascript:alert(1)">link</a>`, out: "link"},
	}
	for _, c := range cases {
		assert.Equal(c.out, SanitizeBio(c.in), "input: %s", c.in)
	}
}
