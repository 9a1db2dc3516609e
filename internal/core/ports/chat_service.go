package ports

import (
	"context"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// CompletionRequest is what ChatService sends to the completions provider.
type CompletionRequest struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []domain.ChatMessage
}

// CompletionClient talks to a third-party LLM completions API. A non-2xx
// upstream answer is returned as *UpstreamError.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// UpstreamError carries the upstream status code and error body so the
// handler can relay them verbatim.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

type ChatService interface {
	Reply(ctx context.Context, history []domain.ChatMessage) (string, error)
}
