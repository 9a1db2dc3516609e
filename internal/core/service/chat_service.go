package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
)

// ChatConfig is the fixed completion budget of the assistant.
type ChatConfig struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// ChatService relays a conversation to the completions provider.
type ChatService struct {
	client ports.CompletionClient
	cfg    ChatConfig
	log    zerolog.Logger
}

func NewChatService(client ports.CompletionClient, cfg ChatConfig, log zerolog.Logger) *ChatService {
	return &ChatService{
		client: client,
		cfg:    cfg,
		log:    log.With().Str("component", "chat").Logger(),
	}
}

// Reply returns the assistant's answer to history. Upstream refusals are
// returned as *ports.UpstreamError.
func (s *ChatService) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	if len(history) == 0 {
		return "", domain.ErrEmptyHistory
	}

	msgs := make([]domain.ChatMessage, 0, len(history)+1)
	if p := strings.TrimSpace(s.cfg.SystemPrompt); p != "" {
		msgs = append(msgs, domain.ChatMessage{Role: domain.ChatRoleSystem, Content: p})
	}
	msgs = append(msgs, history...)

	content, err := s.client.Complete(ctx, ports.CompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		Messages:    msgs,
	})
	if err != nil {
		s.log.Error().Err(err).Int("messages", len(msgs)).Msg("completion failed")
		return "", fmt.Errorf("chat reply: %w", err)
	}
	return content, nil
}
