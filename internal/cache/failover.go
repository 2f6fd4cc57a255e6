package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"coworking/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverCache serves from primary until it fails, then from fallback,
// probing primary again once per recoveryInterval.
type FailoverCache struct {
	primary  domain.Cache
	fallback domain.Cache
	logger   *zerolog.Logger
	isDown   atomic.Bool

	mu        sync.Mutex
	lastCheck time.Time
	now       func() time.Time
}

func NewFailoverCache(primary, fallback domain.Cache, logger *zerolog.Logger) *FailoverCache {
	return &FailoverCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *FailoverCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("Primary cache failed, falling back to memory")
	c.isDown.Store(true)
	c.mu.Lock()
	c.lastCheck = c.now()
	c.mu.Unlock()
}

// usePrimary reports whether the primary should be tried for this call.
func (c *FailoverCache) usePrimary() bool {
	if !c.isDown.Load() {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now().Sub(c.lastCheck) > recoveryInterval {
		c.lastCheck = c.now()
		return true
	}
	return false
}

func (c *FailoverCache) recovered() {
	if c.isDown.Swap(false) {
		c.logger.Info().Msg("Primary cache recovered")
	}
}

func (c *FailoverCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	if c.usePrimary() {
		found, err := c.primary.Get(ctx, key, out)
		if err == nil {
			c.recovered()
			return found, nil
		}
		c.markDown(err)
	}
	return c.fallback.Get(ctx, key, out)
}

func (c *FailoverCache) Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	if c.usePrimary() {
		err := c.primary.Set(ctx, key, val, ttl)
		if err == nil {
			c.recovered()
			return nil
		}
		c.markDown(err)
	}
	return c.fallback.Set(ctx, key, val, ttl)
}

// Delete clears the fallback as well as the primary.
func (c *FailoverCache) Delete(ctx context.Context, keys ...string) error {
	fallbackErr := c.fallback.Delete(ctx, keys...)
	if c.usePrimary() {
		err := c.primary.Delete(ctx, keys...)
		if err == nil {
			c.recovered()
			return fallbackErr
		}
		c.markDown(err)
	}
	return fallbackErr
}
