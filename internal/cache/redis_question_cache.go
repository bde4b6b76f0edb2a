package cache

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"battleacademy/internal/logger"
	"battleacademy/internal/models"
)

// RedisQuestionCache caches serialized questions in Redis and falls back to
// the loader on cache miss. Keys: question:{id} holding the JSON form.
type RedisQuestionCache struct {
	client *redis.Client
	loader Loader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewRedisQuestionCache(client *redis.Client, loader Loader, ttl time.Duration) *RedisQuestionCache {
	return &RedisQuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *RedisQuestionCache) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_cache")
	key := c.key(id)

	if q, ok := c.fromRedis(ctx, key); ok {
		return q, nil
	}

	result, err, _ := c.sf.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if q, ok := c.fromRedis(ctx, key); ok {
			return q, nil
		}

		question, err := c.loader.Get(ctx, id)
		if err != nil || question == nil {
			return question, err
		}

		raw, err := json.Marshal(question)
		if err != nil {
			return nil, err
		}
		// Cache write is best-effort; serving the question matters more.
		if err := c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err(); err != nil {
			log.Warn("failed to cache question %d: %v", id, err)
		}
		return question, nil
	})
	if err != nil {
		return nil, err
	}
	question, _ := result.(*models.Question)
	return question, nil
}

func (c *RedisQuestionCache) fromRedis(ctx context.Context, key string) (*models.Question, bool) {
	log := logger.FromContext(ctx).WithPrefix("question_cache")

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn("redis get failed for %s: %v", key, err)
		}
		return nil, false
	}
	var q models.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		log.Warn("corrupt cache entry for %s: %v", key, err)
		return nil, false
	}
	return &q, true
}

func (c *RedisQuestionCache) key(id int64) string {
	return "question:" + strconv.FormatInt(id, 10)
}

func (c *RedisQuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
