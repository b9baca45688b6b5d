package llm

import (
	"fmt"
	"strings"
)

// Supported providers.
const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// providerAliases maps accepted spellings to a provider.
var providerAliases = map[string]string{
	"":          ProviderOllama,
	"ollama":    ProviderOllama,
	"lmstudio":  ProviderLMStudio,
	"lm-studio": ProviderLMStudio,
	"llmstudio": ProviderLMStudio,
}

// NewClient builds the client for a configured provider. An empty provider
// selects Ollama; an empty baseURL selects the provider's local default.
func NewClient(provider, model, baseURL string) (Client, error) {
	name, ok := providerAliases[strings.ToLower(strings.TrimSpace(provider))]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
	if name == ProviderLMStudio {
		return NewLMStudioClient(model, baseURL)
	}
	return NewOllamaClient(model, baseURL)
}
