package inmem

import (
	"context"
	"testing"

	"github.com/edikoyo/jamhub"
	"github.com/stretchr/testify/assert"
)

func TestActivityStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	uid := jamhub.UserId(5)

	s := NewActivityStore()
	{
		logs, err := s.ByUserId(ctx, uid)
		if assert.NoError(err) {
			assert.Equal(0, len(logs))
		}
	}

	err := s.AddLog(ctx, uid, jamhub.Activity{Name: "image_uploaded", Data: map[string]interface{}{"url": "https://x/img.png"}})
	if !assert.NoError(err) {
		return
	}

	{
		logs, err := s.ByUserId(ctx, uid)
		if !assert.NoError(err) {
			return
		}

		if !assert.Equal(1, len(logs)) {
			return
		}
		log := logs[0]
		assert.Equal("image_uploaded", log.Name)
		assert.Equal(map[string]interface{}{"url": "https://x/img.png"}, log.Data)
	}

	{
		// unknown user id
		logs, err := s.ByUserId(ctx, jamhub.UserId(34290))
		if assert.NoError(err) {
			assert.Equal(0, len(logs))
		}
	}
}
