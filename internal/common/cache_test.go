package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(5*time.Minute, 10*time.Minute)

	c.Set(CacheKeyBlog(1), "value")

	got, ok := c.Get(CacheKeyBlog(1))
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = c.Get(CacheKeyBlog(2))
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	c := NewCache(5*time.Minute, 10*time.Minute)

	c.Set(CacheKeyBlogList(), "value", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(CacheKeyBlogList())
	assert.False(t, ok)
}

func TestCacheDeleteAndFlush(t *testing.T) {
	c := NewCache(5*time.Minute, 10*time.Minute)

	c.Set(CacheKeyBlog(1), "a")
	c.Set(CacheKeyBlogList(), "b")

	c.Delete(CacheKeyBlog(1))
	_, ok := c.Get(CacheKeyBlog(1))
	assert.False(t, ok)

	c.Flush()
	_, ok = c.Get(CacheKeyBlogList())
	assert.False(t, ok)
}
