package cache

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"battleacademy/internal/models"
)

// Loader fetches question content from the backing store on cache miss.
// Satisfied by repository.QuestionRepository.
type Loader interface {
	Get(ctx context.Context, id int64) (*models.Question, error)
}

// QuestionCache serves question content for the submission hot path.
type QuestionCache interface {
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
}

// MemoryQuestionCache caches questions in-process with TTL to avoid repeated
// DB hits while a quiz is being played.
type MemoryQuestionCache struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	rndMu sync.Mutex
	cache map[int64]cachedQuestion
}

type cachedQuestion struct {
	question  models.Question
	expiresAt time.Time
}

func NewMemoryQuestionCache(loader Loader, ttl time.Duration) *MemoryQuestionCache {
	return &MemoryQuestionCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int64]cachedQuestion),
	}
}

func (c *MemoryQuestionCache) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[id]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		q := entry.question
		return &q, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[id]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			q := entry.question
			return &q, nil
		}
		c.mu.RUnlock()

		question, err := c.loader.Get(ctx, id)
		if err != nil || question == nil {
			// Misses are not cached: unknown ids are a client error path.
			return question, err
		}

		c.mu.Lock()
		c.cache[id] = cachedQuestion{
			question:  *question,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return question, nil
	})
	if err != nil {
		return nil, err
	}
	question, _ := result.(*models.Question)
	return question, nil
}

func (c *MemoryQuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
