package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/utils"
)

// RecommendationCache keeps computed recommendations keyed by a request
// digest. The catalog changes rarely relative to how often the same
// disease/weight combinations are requested, so a short TTL is enough.
type RecommendationCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewRecommendationCache connects using REDIS_ADDR. Callers treat a nil
// cache as "caching disabled", so a missing address is an error the caller
// may ignore.
func NewRecommendationCache(log *logger.Logger) (*RecommendationCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("RECOMMENDATION_CACHE_TTL", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RecommendationCache{
		log: log.With("service", "RecommendationCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (c *RecommendationCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, "recommendation:"+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Cache get failed", "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *RecommendationCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, "recommendation:"+key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", "error", err)
	}
}

func (c *RecommendationCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
