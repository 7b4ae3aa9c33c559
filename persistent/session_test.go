package persistent

import (
	"context"
	"testing"

	"github.com/edikoyo/jamhub"
	"github.com/edikoyo/jamhub/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/buntdb"
)

func TestSessionRegisterAndRefresh(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	bdb, err := buntdb.Open(":memory:")
	if err != nil {
		panic(err)
	}
	defer bdb.Close()

	activityStore := inmem.NewActivityStore()
	sessionStore := &SessionStore{Buntdb: bdb, ActivityStore: &activityStore}

	session, err := sessionStore.RegisterNew(ctx, 9231982, "192.168.0.101", "Chrome/openBased")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(jamhub.UserId(9231982), session.UserId)
	assert.Equal("192.168.0.101", session.Ip)
	assert.Equal("Chrome/openBased", session.UserAgent)
	assert.NotEmpty(session.Token)

	exists, err := sessionStore.Exists(session.Token)
	assert.NoError(err)
	assert.True(exists)

	logs, err := activityStore.ByUserId(ctx, session.UserId)
	if !assert.NoError(err) {
		return
	}
	lastLog := logs[len(logs)-1]
	assert.Equal("session_created", lastLog.Name)
	assert.Equal("192.168.0.101", lastLog.Data["ip"])
	assert.Equal("Chrome/openBased", lastLog.Data["userAgent"])

	// refresh without changes should not add logs
	{
		refreshed, err := sessionStore.AcquireAndRefresh(ctx, session.Token, "192.168.0.101", "Chrome/openBased")
		if !assert.NoError(err) {
			return
		}
		assert.Equal(session.Id, refreshed.Id)
		refreshedLogs, err := activityStore.ByUserId(ctx, session.UserId)
		if !assert.NoError(err) {
			return
		}
		assert.Equal(logs, refreshedLogs)
	}

	// refresh with a different ip is logged
	{
		refreshed, err := sessionStore.AcquireAndRefresh(ctx, session.Token, "192.168.0.102", "Chrome/openBased")
		if !assert.NoError(err) {
			return
		}
		assert.Equal("192.168.0.102", refreshed.Ip)
		refreshedLogs, err := activityStore.ByUserId(ctx, session.UserId)
		if !assert.NoError(err) {
			return
		}
		if assert.Equal(len(logs)+1, len(refreshedLogs)) {
			latestLog := refreshedLogs[len(refreshedLogs)-1]
			if assert.Equal("session_changed_ip", latestLog.Name) {
				assert.Equal(refreshed.Id, latestLog.Data["session_id"])
				assert.Equal("192.168.0.101", latestLog.Data["previous_ip"])
				assert.Equal("192.168.0.102", latestLog.Data["new_ip"])
			}
		}
	}
}

func TestSessionInvalidate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	bdb, err := buntdb.Open(":memory:")
	if err != nil {
		panic(err)
	}
	defer bdb.Close()

	activityStore := inmem.NewActivityStore()
	sessionStore := &SessionStore{Buntdb: bdb, ActivityStore: &activityStore}

	session, err := sessionStore.RegisterNew(ctx, 1, "127.0.0.1", "tester")
	if !assert.NoError(err) {
		return
	}

	assert.NoError(sessionStore.InvalidateByAuthToken(session.Token))

	exists, err := sessionStore.Exists(session.Token)
	assert.NoError(err)
	assert.False(exists)

	_, err = sessionStore.AcquireAndRefresh(ctx, session.Token, "127.0.0.1", "tester")
	assert.ErrorIs(err, jamhub.ErrSessionNotFound)

	assert.ErrorIs(sessionStore.InvalidateByAuthToken("unknown"), jamhub.ErrSessionNotFound)
}
