package assistant

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Message represents a single turn of the conversation sent to the
// completion provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionProvider produces a text completion for a system prompt plus a
// conversation history. Implementations are treated as unreliable and
// possibly slow; no retry is applied at this layer.
type CompletionProvider interface {
	Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}

// LangchainProvider implements CompletionProvider on top of a langchaingo
// model. The model is constructed by the caller and injected, so tests can
// substitute a mock and no process-wide client state exists.
type LangchainProvider struct {
	model       llms.Model
	maxTokens   int
	temperature float64
}

// NewLangchainProvider wraps an initialized model with the completion
// parameters used for every request.
func NewLangchainProvider(model llms.Model, maxTokens int, temperature float64) *LangchainProvider {
	return &LangchainProvider{
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Complete implements CompletionProvider.
func (p *LangchainProvider) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages)+1)
	content = append(content, llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt))

	for _, msg := range messages {
		switch msg.Role {
		case "user":
			content = append(content, llms.TextParts(schema.ChatMessageTypeHuman, msg.Content))
		case "assistant":
			content = append(content, llms.TextParts(schema.ChatMessageTypeAI, msg.Content))
		case "system":
			content = append(content, llms.TextParts(schema.ChatMessageTypeSystem, msg.Content))
		default:
			return "", fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	resp, err := p.model.GenerateContent(ctx, content,
		llms.WithMaxTokens(p.maxTokens),
		llms.WithTemperature(p.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Content, nil
}
