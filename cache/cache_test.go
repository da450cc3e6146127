package cache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-dev/celerc/cache"
)

func TestPrepCacheGetOrLoadCachesValue(t *testing.T) {
	c := cache.NewPrepCache(time.Minute)
	key := cache.Key{Owner: "o", Repo: "r", Path: "p", Reference: "main"}
	calls := 0

	load := func() (any, error) {
		calls++
		return "loaded", nil
	}

	v1, err := c.GetOrLoad(key, load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", v1)

	v2, err := c.GetOrLoad(key, load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", v2)
	assert.Equal(t, 1, calls)
}

func TestPrepCacheExpiresAfterTTL(t *testing.T) {
	c := cache.NewPrepCache(-time.Second)
	key := cache.Key{Owner: "o", Repo: "r", Path: "p", Reference: "main"}
	c.Put(key, "v")

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestPrepCacheInvalidate(t *testing.T) {
	c := cache.NewPrepCache(time.Minute)
	key := cache.Key{Owner: "o", Repo: "r", Path: "p", Reference: "main"}
	c.Put(key, "v")
	c.Invalidate(key)

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestPrepCacheGetOrLoadDoesNotCacheError(t *testing.T) {
	c := cache.NewPrepCache(time.Minute)
	key := cache.Key{Owner: "o", Repo: "r", Path: "p", Reference: "main"}
	wantErr := errors.New("boom")

	_, err := c.GetOrLoad(key, func() (any, error) { return nil, wantErr })
	require.ErrorIs(t, err, wantErr)

	_, ok := c.Get(key)
	assert.False(t, ok)
}
