package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New[string]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("taf:KMIA", "TAF KMIA 241100Z", time.Minute)
	got, ok := c.Get("taf:KMIA")
	assert.True(t, ok)
	assert.Equal(t, "TAF KMIA 241100Z", got)
}

func TestExpiry(t *testing.T) {
	c := New[int]()
	c.Set("k", 42, 10*time.Millisecond)

	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(25 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "expired entries must not be served")
	assert.Equal(t, 0, c.Len(), "expired entries are evicted on access")
}

func TestKeysAreIndependent(t *testing.T) {
	c := New[[]string]()
	c.Set("metar:KMIA", []string{"KMIA 241253Z"}, time.Minute)
	c.Set("metar:SKRG", []string{"SKRG 241300Z"}, time.Minute)

	a, _ := c.Get("metar:KMIA")
	b, _ := c.Get("metar:SKRG")
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, c.Len())
}
