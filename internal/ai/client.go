package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// ErrorMarker prefixes every fallback text produced in place of generated
// content.
const ErrorMarker = "Error:"

const defaultFragmentBuffer = 64

// Fragment is one piece of streamed text. A fragment with Err set is
// terminal; its Text carries the fallback message.
type Fragment struct {
	Text string
	Err  error
}

type ClientConfig struct {
	Timeout        int // seconds, blocking calls
	StreamTimeout  int // seconds, whole stream
	FragmentBuffer int
}

// Client is the single entry point to the configured generation backend.
type Client struct {
	gen IGenerator
	cfg ClientConfig
}

func NewClient(gen IGenerator, cfg ClientConfig) *Client {
	if cfg.FragmentBuffer <= 0 {
		cfg.FragmentBuffer = defaultFragmentBuffer
	}
	return &Client{gen: gen, cfg: cfg}
}

// FallbackText renders the user-facing replacement for a failed generation.
func FallbackText(what string, err error) string {
	return fmt.Sprintf("%s %s failed: %v", ErrorMarker, what, err)
}

func IsFallback(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), ErrorMarker)
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.gen == nil {
		return "", ErrUnavailable
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Second)
		defer cancel()
	}
	resp, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateText never fails; a backend error becomes FallbackText.
func (c *Client) GenerateText(ctx context.Context, prompt string, what string) string {
	text, err := c.Generate(ctx, prompt)
	if err != nil {
		logutil.GetLogger(ctx).Error("generation failed", zap.String("what", what), zap.Error(err))
		return FallbackText(what, err)
	}
	return text
}

// Stream starts generation on its own goroutine and returns the fragments in
// production order. The channel is always closed; on failure the last value
// is a Fragment with Err set. Cancelling ctx stops the producer.
func (c *Client) Stream(ctx context.Context, prompt string, what string) <-chan Fragment {
	out := make(chan Fragment, c.cfg.FragmentBuffer)
	go func() {
		defer close(out)
		send := func(f Fragment) error {
			select {
			case out <- f:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if c.gen == nil {
			_ = send(Fragment{Text: FallbackText(what, ErrUnavailable), Err: ErrUnavailable})
			return
		}
		genCtx := ctx
		if c.cfg.StreamTimeout > 0 {
			var cancel context.CancelFunc
			genCtx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.StreamTimeout)*time.Second)
			defer cancel()
		}
		err := c.gen.GenerateStream(genCtx, prompt, func(chunk string) error {
			if chunk == "" {
				return nil
			}
			return send(Fragment{Text: chunk})
		})
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			logutil.GetLogger(ctx).Debug("stream stopped by caller", zap.String("what", what))
			return
		}
		logutil.GetLogger(ctx).Error("stream generation failed", zap.String("what", what), zap.Error(err))
		_ = send(Fragment{Text: FallbackText(what, err), Err: err})
	}()
	return out
}
