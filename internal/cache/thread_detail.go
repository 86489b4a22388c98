package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"forumapi/internal/middleware"
	"forumapi/internal/models"
	"forumapi/internal/observability"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	threadDetailKeyFormat     = "thread:%s:detail:%d"
	threadGenerationKeyFormat = "thread:%s:gen"
)

// DefaultThreadDetailTTL bounds how long a stale detail can be served when an
// invalidation is lost.
const DefaultThreadDetailTTL = 30 * time.Second

const (
	// generationTTL must stay far above any detail TTL so a reset counter
	// never meets a live entry of an earlier generation.
	generationTTL = 24 * time.Hour
	// loadTimeout bounds a shared load that no longer follows its caller's context.
	loadTimeout = 10 * time.Second
)

// ThreadDetailKey is the key of a thread's detail at generation gen.
func ThreadDetailKey(threadID string, gen int64) string {
	return fmt.Sprintf(threadDetailKeyFormat, threadID, gen)
}

// ThreadGenerationKey is the counter bumped by every mutation of a thread.
func ThreadGenerationKey(threadID string) string {
	return fmt.Sprintf(threadGenerationKeyFormat, threadID)
}

// ThreadDetailLoader builds a thread detail from storage.
type ThreadDetailLoader func(ctx context.Context) (*models.ThreadDetail, error)

// ThreadDetailCache memoises assembled thread details in Redis. A nil cache
// or a cache without a client passes every call through to the loader.
//
// Entries are keyed by the thread's generation, read before loading. A load
// that raced with a mutation stores under the superseded generation and is
// never served again.
type ThreadDetailCache struct {
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

func NewThreadDetailCache(rdb *redis.Client, ttl time.Duration) *ThreadDetailCache {
	if ttl <= 0 {
		ttl = DefaultThreadDetailTTL
	}
	return &ThreadDetailCache{rdb: rdb, ttl: ttl}
}

func (c *ThreadDetailCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *ThreadDetailCache) generation(ctx context.Context, threadID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, ThreadGenerationKey(threadID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetOrLoad returns the cached detail for threadID or runs load, storing its
// result. Concurrent misses for one generation share a single load, which
// keeps running when the caller that started it goes away. Redis failures
// fall back to load and are never returned.
func (c *ThreadDetailCache) GetOrLoad(ctx context.Context, threadID string, load ThreadDetailLoader) (*models.ThreadDetail, error) {
	if !c.enabled() {
		return load(ctx)
	}

	gen, err := c.generation(ctx, threadID)
	if err != nil {
		observability.ThreadDetailCache.WithLabelValues("error").Inc()
		middleware.Logger.WarnContext(ctx, "thread detail generation read failed", "thread_id", threadID, "error", err)
		return load(ctx)
	}

	key := ThreadDetailKey(threadID, gen)
	if detail, ok := c.get(ctx, key); ok {
		return detail, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		detail, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.set(loadCtx, key, detail)
		return detail, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.ThreadDetail), nil
	}
}

func (c *ThreadDetailCache) get(ctx context.Context, key string) (*models.ThreadDetail, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ThreadDetailCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		observability.ThreadDetailCache.WithLabelValues("error").Inc()
		middleware.Logger.WarnContext(ctx, "thread detail cache read failed", "key", key, "error", err)
		return nil, false
	}

	var detail models.ThreadDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		observability.ThreadDetailCache.WithLabelValues("error").Inc()
		middleware.Logger.WarnContext(ctx, "thread detail cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	observability.ThreadDetailCache.WithLabelValues("hit").Inc()
	return &detail, true
}

func (c *ThreadDetailCache) set(ctx context.Context, key string, detail *models.ThreadDetail) {
	raw, err := json.Marshal(detail)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "thread detail cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "thread detail cache write failed", "key", key, "error", err)
	}
}

// Invalidate moves the thread to a new generation after it changed. It runs
// even when ctx is already cancelled, since the change it follows is committed.
func (c *ThreadDetailCache) Invalidate(ctx context.Context, threadID string) {
	if !c.enabled() {
		return
	}

	ctx = context.WithoutCancel(ctx)
	key := ThreadGenerationKey(threadID)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, generationTTL)
		return nil
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "thread detail cache invalidation failed", "thread_id", threadID, "error", err)
	}
}
