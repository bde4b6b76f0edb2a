package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battleacademy/internal/models"
)

func newRedisCache(t *testing.T, loader Loader, ttl time.Duration) (*RedisQuestionCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisQuestionCache(client, loader, ttl), mr
}

func TestRedisCache_LoadsAndStores(t *testing.T) {
	loader := newTestLoader()
	c, mr := newRedisCache(t, loader, time.Minute)

	q, err := c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "2 + 2 = ?", q.Content)

	// The question landed in redis with a TTL.
	raw, err := mr.Get("question:1")
	require.NoError(t, err)
	var stored models.Question
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, int64(1), stored.ID)
	assert.GreaterOrEqual(t, mr.TTL("question:1"), time.Minute)

	_, err = c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loader.callCount(), "second read must come from redis")
}

func TestRedisCache_MissesNotCached(t *testing.T) {
	loader := newTestLoader()
	c, mr := newRedisCache(t, loader, time.Minute)

	q, err := c.GetQuestion(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, q)
	assert.False(t, mr.Exists("question:999"))
}

func TestRedisCache_CorruptEntryFallsBack(t *testing.T) {
	loader := newTestLoader()
	c, mr := newRedisCache(t, loader, time.Minute)

	require.NoError(t, mr.Set("question:1", "not json"))

	q, err := c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "2 + 2 = ?", q.Content)
	assert.Equal(t, int64(1), loader.callCount())
}

func TestRedisCache_SurvivesRedisOutage(t *testing.T) {
	loader := newTestLoader()
	c, mr := newRedisCache(t, loader, time.Minute)

	mr.Close()

	// Redis being down must not take the hot path down with it.
	q, err := c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "2 + 2 = ?", q.Content)
}
