package gencache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/examprep/internal/ai"
)

type countingGenerator struct {
	calls int
	err   error
}

func (c *countingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "answer:" + prompt, nil
}

func (c *countingGenerator) GenerateStream(ctx context.Context, prompt string, onChunk ai.ChunkFunc) error {
	c.calls++
	return onChunk(prompt)
}

func TestWrapNoneReturnsGenerator(t *testing.T) {
	gen := &countingGenerator{}
	wrapped, err := Wrap(context.Background(), gen, Config{})
	require.NoError(t, err)
	require.Same(t, gen, wrapped)

	_, err = Wrap(context.Background(), gen, Config{Type: "memcached"})
	require.Error(t, err)
}

func TestLRUCachesBlockingCalls(t *testing.T) {
	gen := &countingGenerator{}
	wrapped, err := Wrap(context.Background(), gen, Config{Type: "lru", Size: 8, TTLSeconds: 60})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := wrapped.Generate(context.Background(), "p")
		require.NoError(t, err)
		require.Equal(t, "answer:p", res)
	}
	require.Equal(t, 1, gen.calls)

	_, err = wrapped.Generate(context.Background(), "q")
	require.NoError(t, err)
	require.Equal(t, 2, gen.calls)
}

func TestLRUDoesNotCacheErrors(t *testing.T) {
	gen := &countingGenerator{err: errors.New("down")}
	wrapped := WrapLRU(gen, 8, time.Minute)
	_, err := wrapped.Generate(context.Background(), "p")
	require.Error(t, err)
	_, err = wrapped.Generate(context.Background(), "p")
	require.Error(t, err)
	require.Equal(t, 2, gen.calls)
}

func TestLRUStreamsPassThrough(t *testing.T) {
	gen := &countingGenerator{}
	wrapped := WrapLRU(gen, 8, time.Minute)
	for i := 0; i < 2; i++ {
		require.NoError(t, wrapped.GenerateStream(context.Background(), "p", func(string) error { return nil }))
	}
	require.Equal(t, 2, gen.calls)
}

func TestRedisUnreachableFallsThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	gen := &countingGenerator{}
	wrapped := NewRedisGenerator(gen, client, time.Minute)
	res, err := wrapped.Generate(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "answer:p", res)
	require.Equal(t, 1, gen.calls)
}

func TestWrapRedisRequiresURL(t *testing.T) {
	_, err := Wrap(context.Background(), &countingGenerator{}, Config{Type: "redis"})
	require.Error(t, err)
	_, err = Wrap(context.Background(), &countingGenerator{}, Config{Type: "redis", RedisURL: "::bad"})
	require.Error(t, err)
}

func TestBuildCacheKeyStable(t *testing.T) {
	require.Equal(t, buildCacheKey("p"), buildCacheKey("p"))
	require.NotEqual(t, buildCacheKey("p"), buildCacheKey("q"))
}
