package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openaiConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

type openaiProvider struct {
	client *openai.Client
}

func (p *openaiProvider) Name() string {
	return "openai"
}

func (p *openaiProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if p.client == nil {
		return "", ErrUnavailable
	}
	resp, err := p.client.CreateChatCompletion(ctx, openaiRequest(model, prompt, false))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai response has no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (p *openaiProvider) GenerateStream(ctx context.Context, model string, prompt string, onChunk ChunkFunc) error {
	if p.client == nil {
		return ErrUnavailable
	}
	stream, err := p.client.CreateChatCompletionStream(ctx, openaiRequest(model, prompt, true))
	if err != nil {
		return err
	}
	defer stream.Close()
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onChunk(resp.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
}

func openaiRequest(model, prompt string, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: stream,
	}
}

func createOpenAIFactory(args interface{}) (IProvider, error) {
	cfg := &openaiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return &openaiProvider{}, nil
	}
	conf := openai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		conf.BaseURL = base
	}
	return &openaiProvider{client: openai.NewClientWithConfig(conf)}, nil
}

func init() {
	Register("openai", createOpenAIFactory)
}
