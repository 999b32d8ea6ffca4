package gencache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/examprep/internal/ai"
)

// WrapRedis connects to url and caches results there. Cache read or write
// failures are logged and never fail the generation.
func WrapRedis(ctx context.Context, gen ai.IGenerator, url string, ttl time.Duration) (ai.IGenerator, error) {
	if gen == nil {
		return gen, nil
	}
	if url == "" {
		return nil, fmt.Errorf("gen_cache.redis_url is required for redis cache")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return NewRedisGenerator(gen, client, ttl), nil
}

func NewRedisGenerator(gen ai.IGenerator, client redis.Cmdable, ttl time.Duration) ai.IGenerator {
	return &redisGenerator{next: gen, client: client, ttl: ttl}
}

type redisGenerator struct {
	next   ai.IGenerator
	client redis.Cmdable
	ttl    time.Duration
}

func (r *redisGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := buildCacheKey(prompt)
	cached, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		logutil.GetLogger(ctx).Debug("generation cache hit (redis)")
		return cached, nil
	case !errors.Is(err, redis.Nil):
		logutil.GetLogger(ctx).Warn("generation cache read failed", zap.Error(err))
	}
	res, err := r.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, key, res, r.ttl).Err(); err != nil {
		logutil.GetLogger(ctx).Warn("generation cache write failed", zap.Error(err))
	}
	return res, nil
}

func (r *redisGenerator) GenerateStream(ctx context.Context, prompt string, onChunk ai.ChunkFunc) error {
	return r.next.GenerateStream(ctx, prompt, onChunk)
}
