package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClient_NilIsAlwaysMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))

	var dst map[string]string
	assert.False(t, c.GetJSON(ctx, "k", &dst))
	c.SetJSON(ctx, "k", map[string]string{"a": "b"})
}

func TestClient_FailsSafeWhenRedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := New(rdb, time.Minute, zap.NewNop())
	ctx := context.Background()

	data, err := c.Get(ctx, "employee:1")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "employee:1", []byte("{}"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "employee:1", "employee:2"))
	assert.Error(t, c.Ping(ctx))

	var dst struct{}
	assert.False(t, c.GetJSON(ctx, "employee:1", &dst))
}
