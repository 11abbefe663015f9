package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore connects to REDIS_ADDR and skips when it is unset.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: addr, DialTimeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("redis unreachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	prefix := "tutor:test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			rdb.Del(ctx, iter.Val())
		}
	})
	return NewRedisStore(rdb, prefix, time.Minute)
}

func TestRedisStore_Lifecycle(t *testing.T) {
	r := newTestRedisStore(t)
	ctx := t.Context()

	require.NoError(t, r.Create(ctx, newSession("a", time.Now().UTC())))
	assert.ErrorIs(t, r.Create(ctx, newSession("a", time.Now().UTC())), ErrExists)

	s, err := r.Append(ctx, "a", Turn{QuizAnswer: "1/2", Reply: "correct"})
	require.NoError(t, err)
	assert.Equal(t, StageQuiz, s.Stage)

	got, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, got.Responses, 1)
	assert.Equal(t, "fractions", got.Topic)

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Append(ctx, "missing", Turn{Message: "hi", Reply: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := r.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedisStore_ConcurrentAppends(t *testing.T) {
	r := newTestRedisStore(t)
	ctx := t.Context()
	require.NoError(t, r.Create(ctx, newSession("a", time.Now().UTC())))

	const workers = 4
	errs := make(chan error, workers)
	for range workers {
		go func() {
			_, err := r.Append(ctx, "a", Turn{Message: "hi", Reply: "hello"})
			errs <- err
		}()
	}
	for range workers {
		require.NoError(t, <-errs)
	}

	got, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, got.Responses, workers)
}
