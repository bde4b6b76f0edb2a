package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battleacademy/internal/models"
)

type countingLoader struct {
	mu        sync.Mutex
	calls     int64
	delay     time.Duration
	questions map[int64]*models.Question
}

func (l *countingLoader) Get(ctx context.Context, id int64) (*models.Question, error) {
	atomic.AddInt64(&l.calls, 1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.questions[id], nil
}

func (l *countingLoader) callCount() int64 {
	return atomic.LoadInt64(&l.calls)
}

func newTestLoader() *countingLoader {
	return &countingLoader{
		questions: map[int64]*models.Question{
			1: {ID: 1, Content: "2 + 2 = ?", Options: []models.Option{{ID: "a", Text: "4", IsCorrect: true}}},
		},
	}
}

func TestMemoryCache_ServesFromCache(t *testing.T) {
	loader := newTestLoader()
	c := NewMemoryQuestionCache(loader, time.Minute)

	q, err := c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "2 + 2 = ?", q.Content)

	q, err = c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int64(1), loader.callCount(), "second read must hit the cache")
}

func TestMemoryCache_EntriesExpire(t *testing.T) {
	loader := newTestLoader()
	c := NewMemoryQuestionCache(loader, time.Minute)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.clock = func() time.Time { return now }

	_, err := c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)

	// Past the TTL plus maximum jitter the entry must reload.
	now = now.Add(2 * time.Minute)
	_, err = c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loader.callCount())
}

func TestMemoryCache_MissesNotCached(t *testing.T) {
	loader := newTestLoader()
	c := NewMemoryQuestionCache(loader, time.Minute)

	q, err := c.GetQuestion(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = c.GetQuestion(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, q)
	assert.Equal(t, int64(2), loader.callCount(), "unknown ids go back to the loader every time")
}

func TestMemoryCache_ConcurrentReadsLoadOnce(t *testing.T) {
	loader := newTestLoader()
	loader.delay = 10 * time.Millisecond
	c := NewMemoryQuestionCache(loader, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := c.GetQuestion(context.Background(), 1)
			assert.NoError(t, err)
			assert.NotNil(t, q)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), loader.callCount(), "concurrent misses collapse into one load")
}

func TestMemoryCache_ReturnsCopy(t *testing.T) {
	loader := newTestLoader()
	c := NewMemoryQuestionCache(loader, time.Minute)

	q1, err := c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	q1.Content = "mutated"

	q2, err := c.GetQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2 + 2 = ?", q2.Content, "callers must not corrupt the cached value")
}
