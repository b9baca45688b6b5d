package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultLMStudioBaseURL = "http://localhost:1234/v1"
	// LM Studio ignores the key unless authentication is turned on.
	placeholderAPIKey = "lm-studio"
)

// LMStudioClient talks to LM Studio's OpenAI-compatible API.
type LMStudioClient struct {
	api     openai.Client
	model   string
	baseURL string
}

// NewLMStudioClient creates a client for model served at baseURL. The key is
// taken from LMSTUDIO_API_KEY, then OPENAI_API_KEY.
func NewLMStudioClient(model, baseURL string) (*LMStudioClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("lm studio: model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}

	return &LMStudioClient{
		api:     openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(apiKeyFromEnv())),
		model:   model,
		baseURL: baseURL,
	}, nil
}

func apiKeyFromEnv() string {
	for _, name := range []string{"LMSTUDIO_API_KEY", "OPENAI_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return placeholderAPIKey
}

// Chat implements Client.
func (c *LMStudioClient) Chat(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, msg := range messages {
		params.Messages = append(params.Messages, openAIMessage(msg))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("lm studio: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("lm studio: empty reply")
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatJSON implements Client. LM Studio has no JSON mode for every model, so
// the document is extracted from the plain reply.
func (c *LMStudioClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	reply, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeReply(ProviderLMStudio, reply, result)
}

func openAIMessage(msg Message) openai.ChatCompletionMessageParamUnion {
	switch strings.ToLower(msg.Role) {
	case RoleSystem:
		return openai.SystemMessage(msg.Content)
	case RoleAssistant:
		return openai.AssistantMessage(msg.Content)
	default:
		return openai.UserMessage(msg.Content)
	}
}
