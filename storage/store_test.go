package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "replies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCacheMissReturnsNil(t *testing.T) {
	cache := newTestCache(t)

	reply, err := cache.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, reply)
}

func TestCacheSetAndGet(t *testing.T) {
	cache := newTestCache(t)

	want := &CachedReply{Text: "a fair desk goes for about $85", Model: "llama3.1-8b"}
	require.NoError(t, cache.Set("abc", want))

	got, err := cache.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCacheSetOverwrites(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Set("abc", &CachedReply{Text: "first", Model: "m1"}))
	require.NoError(t, cache.Set("abc", &CachedReply{Text: "second", Model: "m2"}))

	got, err := cache.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, &CachedReply{Text: "second", Model: "m2"}, got)
}
