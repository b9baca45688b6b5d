// Package llm provides LLM clients used to review a schedule week.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Chat roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is implemented by each LLM provider.
type Client interface {
	// Chat returns the model's reply as plain text.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON decodes the model's reply into result.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}

func system(content string) Message { return Message{Role: RoleSystem, Content: content} }

func user(content string) Message { return Message{Role: RoleUser, Content: content} }

// decodeReply unmarshals the JSON document found in a model reply.
func decodeReply(provider, reply string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(reply)), result); err != nil {
		return fmt.Errorf("%s: parsing JSON reply: %w (reply: %s)", provider, err, reply)
	}
	return nil
}
