// Package gencache memoizes blocking generation results by prompt.
package gencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/examprep/internal/ai"
)

type Config struct {
	Type       string `json:"type"`
	Size       int    `json:"size"`
	TTLSeconds int    `json:"ttl_seconds"`
	RedisURL   string `json:"redis_url"`
}

// Wrap decorates gen with the cache named by cfg.Type. "none" or an empty
// type returns gen unchanged.
func Wrap(ctx context.Context, gen ai.IGenerator, cfg Config) (ai.IGenerator, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", "none":
		return gen, nil
	case "lru":
		return WrapLRU(gen, cfg.Size, ttl), nil
	case "redis":
		return WrapRedis(ctx, gen, cfg.RedisURL, ttl)
	default:
		return nil, fmt.Errorf("unsupported gen_cache type: %s", cfg.Type)
	}
}

func buildCacheKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "gen:" + hex.EncodeToString(hash[:])
}
