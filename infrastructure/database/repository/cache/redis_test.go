package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableRepository(t *testing.T) *RedisRepository {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client)
}

func TestRedisRepositoryDegradesWhenUnreachable(t *testing.T) {
	repo := unreachableRepository(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.False(t, repo.CreateEntry(ctx, "momo:collection:token", "token", time.Minute))
	assert.Nil(t, repo.FindOne(ctx, "momo:collection:token"))
	assert.False(t, repo.DeleteOne(ctx, "momo:collection:token"))
}
