package service

import (
	"context"
	"strings"

	"github.com/xxxsen/examprep/internal/ai"
	appErr "github.com/xxxsen/examprep/internal/pkg/errors"
	"github.com/xxxsen/examprep/internal/prompt"
)

type ChatRequest struct {
	Message     string `json:"message"`
	Context     string `json:"context"`
	ChatHistory string `json:"chat_history"`
}

type ChatService struct {
	client *ai.Client
}

func NewChatService(client *ai.Client) *ChatService {
	return &ChatService{client: client}
}

// buildPrompt answers from the supplied context when there is one and falls
// back to a general tutoring reply otherwise.
func (s *ChatService) buildPrompt(req ChatRequest) (string, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", appErr.Invalid("Please provide a message")
	}
	if ctxText := strings.TrimSpace(req.Context); ctxText != "" {
		return prompt.Answer(message, ctxText), nil
	}
	return prompt.Chat(message, req.ChatHistory), nil
}

func (s *ChatService) Reply(ctx context.Context, req ChatRequest) (string, error) {
	text, err := s.buildPrompt(req)
	if err != nil {
		return "", err
	}
	return s.client.GenerateText(ctx, text, "chat response"), nil
}

func (s *ChatService) Stream(ctx context.Context, req ChatRequest) (<-chan ai.Fragment, error) {
	text, err := s.buildPrompt(req)
	if err != nil {
		return nil, err
	}
	return s.client.Stream(ctx, text, "chat response"), nil
}
