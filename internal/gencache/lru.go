package gencache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"

	"github.com/xxxsen/examprep/internal/ai"
)

func WrapLRU(gen ai.IGenerator, size int, ttl time.Duration) ai.IGenerator {
	if gen == nil || size <= 0 || ttl <= 0 {
		return gen
	}
	return &lruGenerator{
		next:  gen,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

type lruGenerator struct {
	next  ai.IGenerator
	cache *expirable.LRU[string, string]
}

func (l *lruGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := buildCacheKey(prompt)
	if cached, ok := l.cache.Get(key); ok {
		logutil.GetLogger(ctx).Debug("generation cache hit (lru)")
		return cached, nil
	}
	res, err := l.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	l.cache.Add(key, res)
	return res, nil
}

func (l *lruGenerator) GenerateStream(ctx context.Context, prompt string, onChunk ai.ChunkFunc) error {
	return l.next.GenerateStream(ctx, prompt, onChunk)
}
