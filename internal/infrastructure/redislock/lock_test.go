package redislock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValoresPorDefecto(t *testing.T) {
	l := New(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), Options{})

	assert.Equal(t, defaultTTL, l.opts.TTL)
	assert.Equal(t, defaultMaxWait, l.opts.MaxWait)
	assert.Equal(t, "ledger:lock:t1:p1", l.key("t1", "p1"))
}

func TestLock_ErrorDeConexion(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	l := New(client, Options{KeyPrefix: "test:"})

	unlock, err := l.Lock(context.Background(), "t1", "p1")

	require.Error(t, err)
	assert.Nil(t, unlock)
	assert.Contains(t, err.Error(), "test:t1:p1")
}
