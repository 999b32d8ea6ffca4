package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 8192

type anthropicConfig struct {
	APIKey    string `json:"api_key"`
	BaseURL   string `json:"base_url"`
	MaxTokens int64  `json:"max_tokens"`
}

type anthropicProvider struct {
	client    *anthropic.Client
	maxTokens int64
}

func (p *anthropicProvider) Name() string {
	return "anthropic"
}

func (p *anthropicProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if p.client == nil {
		return "", ErrUnavailable
	}
	msg, err := p.client.Messages.New(ctx, p.params(model, prompt))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic response has no text content")
	}
	return strings.TrimSpace(sb.String()), nil
}

func (p *anthropicProvider) GenerateStream(ctx context.Context, model string, prompt string, onChunk ChunkFunc) error {
	if p.client == nil {
		return ErrUnavailable
	}
	stream := p.client.Messages.NewStreaming(ctx, p.params(model, prompt))
	defer stream.Close()
	for stream.Next() {
		event := stream.Current()
		delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		text, ok := delta.Delta.AsAny().(anthropic.TextDelta)
		if !ok || text.Text == "" {
			continue
		}
		if err := onChunk(text.Text); err != nil {
			return err
		}
	}
	return stream.Err()
}

func (p *anthropicProvider) params(model, prompt string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
}

func createAnthropicFactory(args interface{}) (IProvider, error) {
	cfg := &anthropicConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return &anthropicProvider{maxTokens: maxTokens}, nil
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	client := anthropic.NewClient(opts...)
	return &anthropicProvider{client: &client, maxTokens: maxTokens}, nil
}

func init() {
	Register("anthropic", createAnthropicFactory)
}
