package persistent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiskImageStoreSave(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	dir := t.TempDir()
	store := &DiskImageStore{Dir: dir, BaseURL: "http://localhost:3005/api/v1"}

	url, err := store.Save(ctx, "avatar.PNG", []byte("not really a png"))
	if !assert.NoError(err) {
		return
	}
	assert.True(strings.HasPrefix(url, "http://localhost:3005/api/v1/uploads/"), url)
	assert.True(strings.HasSuffix(url, ".png"), url)

	name := url[strings.LastIndex(url, "/")+1:]
	content, err := os.ReadFile(filepath.Join(dir, name))
	if assert.NoError(err) {
		assert.Equal("not really a png", string(content))
	}

	// two saves of the same filename never collide
	url2, err := store.Save(ctx, "avatar.PNG", []byte("other"))
	if assert.NoError(err) {
		assert.NotEqual(url, url2)
	}

	// unknown extensions are dropped, not trusted
	url3, err := store.Save(ctx, "weird.exe", []byte("x"))
	if assert.NoError(err) {
		assert.False(strings.Contains(url3, ".exe"), url3)
	}
}
