package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNormalizesQuery(t *testing.T) {
	a := Key("What is my  Almuten?", "fp-1")
	b := Key("what is my almuten?", "fp-1")
	assert.Equal(t, a, b, "case and whitespace must not change the key")

	c := Key("what is my almuten?", "fp-2")
	assert.NotEqual(t, a, c, "a different fingerprint is a different key")

	assert.Contains(t, a, "asterion:v1:")
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	require.NoError(t, c.Set("k", []byte("v"), time.Minute))
	got, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete("k"))
	_, found = c.Get("k")
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	require.NoError(t, c.Set("k", []byte("persisted"), time.Minute))
	got, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("persisted"), got)

	// A fresh handle over the same directory still finds the entry.
	c2 := NewDiskCache(dir, time.Minute)
	got, found = c2.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("persisted"), got)
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	require.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestDiskCacheSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := Key("what is my almuten?", "fp-1")
	require.Contains(t, key, ":")
	require.NoError(t, c.Set(key, []byte("v"), time.Minute))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), ":")

	got, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, []byte("v"), got)
}

func TestDiskCacheZeroTTLUsesDefault(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	got, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), got)
}

func TestLayeredCachePromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	require.NoError(t, layered.Set("k", []byte("v"), time.Minute))

	// A second layered cache sharing only the disk directory: the
	// memory side misses, the disk side hits and is promoted.
	layered2 := NewLayeredCache(time.Minute, dir, time.Minute)

	got, found := layered2.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), got)

	// Promotion means a direct memory hit on the second lookup.
	mem, memFound := layered2.memory.Get("k")
	require.True(t, memFound)
	assert.Equal(t, []byte("v"), mem)
}

func TestLayeredCacheDelete(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	require.NoError(t, layered.Set("k", []byte("v"), time.Minute))
	require.NoError(t, layered.Delete("k"))

	_, found := layered.Get("k")
	assert.False(t, found)
}
