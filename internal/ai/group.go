package ai

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type GeneratorEntry struct {
	Name      string
	Generator IGenerator
}

type groupGenerator struct {
	items []GeneratorEntry
}

// NewGroupGenerator tries each entry in order until one succeeds.
func NewGroupGenerator(items []GeneratorEntry) IGenerator {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 {
		return items[0].Generator
	}
	return &groupGenerator{items: items}
}

func (g *groupGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for i, item := range g.items {
		if item.Generator == nil {
			continue
		}
		res, err := item.Generator.Generate(ctx, prompt)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		logutil.GetLogger(ctx).Warn("generator failed", zap.Int("index", i), zap.String("name", item.Name), zap.Error(err))
	}
	if lastErr == nil {
		return "", fmt.Errorf("generator not configured")
	}
	return "", lastErr
}

// GenerateStream moves to the next entry only while nothing has been
// delivered; once a chunk reached the caller a failure is final.
func (g *groupGenerator) GenerateStream(ctx context.Context, prompt string, onChunk ChunkFunc) error {
	var lastErr error
	for i, item := range g.items {
		if item.Generator == nil {
			continue
		}
		delivered := false
		err := item.Generator.GenerateStream(ctx, prompt, func(chunk string) error {
			delivered = true
			return onChunk(chunk)
		})
		if err == nil {
			return nil
		}
		lastErr = err
		if delivered || ctx.Err() != nil {
			break
		}
		logutil.GetLogger(ctx).Warn("stream generator failed", zap.Int("index", i), zap.String("name", item.Name), zap.Error(err))
	}
	if lastErr == nil {
		return fmt.Errorf("generator not configured")
	}
	return lastErr
}
