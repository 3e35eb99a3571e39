package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	c := &Cache{prefix: "pocketbot"}
	assert.Equal(t, "pocketbot:last_question:42", c.Key("last_question", "42"))

	bare := &Cache{}
	assert.Equal(t, "last_question:42", bare.Key("last_question", "42"))
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache("not a url", "")
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}

func TestRedisCache_Live(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis test: REDIS_URL not set")
	}

	c, err := NewRedisCache(url, "pocketbot_test")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	key := c.Key("cache_test", time.Now().Format(time.RFC3339Nano))
	defer c.Delete(ctx, key)

	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, key, "value", time.Minute))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}
