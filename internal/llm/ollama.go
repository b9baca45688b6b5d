package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// OllamaClient talks to a local Ollama server through langchaingo.
type OllamaClient struct {
	llm     *ollama.LLM
	model   string
	baseURL string
}

// NewOllamaClient creates a client for model served at baseURL.
func NewOllamaClient(model, baseURL string) (*OllamaClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("ollama: model is required")
	}
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	lc, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("ollama: creating client: %w", err)
	}
	return &OllamaClient{llm: lc, model: model, baseURL: baseURL}, nil
}

// Chat implements Client.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.complete(ctx, messages)
}

// ChatJSON implements Client, switching Ollama to JSON mode.
func (c *OllamaClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	reply, err := c.complete(ctx, messages, llms.WithJSONMode())
	if err != nil {
		return err
	}
	return decodeReply(ProviderOllama, reply, result)
}

func (c *OllamaClient) complete(ctx context.Context, messages []Message, opts ...llms.CallOption) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.TextParts(langchainRole(msg.Role), msg.Content))
	}

	opts = append([]llms.CallOption{llms.WithModel(c.model)}, opts...)
	resp, err := c.llm.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ollama: empty reply")
	}
	return resp.Choices[0].Content, nil
}

func langchainRole(role string) schema.ChatMessageType {
	switch strings.ToLower(role) {
	case RoleSystem:
		return schema.ChatMessageTypeSystem
	case RoleAssistant:
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}
