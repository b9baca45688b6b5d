package llm

import "testing"

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		baseURL     string
		wantType    string
		wantBaseURL string
		wantErr     bool
	}{
		{name: "ollama", provider: "ollama", wantType: ProviderOllama, wantBaseURL: defaultOllamaBaseURL},
		{name: "empty selects ollama", provider: "", baseURL: "http://ollama.local:11434", wantType: ProviderOllama, wantBaseURL: "http://ollama.local:11434"},
		{name: "lmstudio", provider: "lmstudio", wantType: ProviderLMStudio, wantBaseURL: defaultLMStudioBaseURL},
		{name: "alias with spaces", provider: " LM-Studio ", wantType: ProviderLMStudio, wantBaseURL: defaultLMStudioBaseURL},
		{name: "unsupported", provider: "copilot", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.provider, "llama3", tt.baseURL)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unsupported provider")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var gotType, gotBaseURL string
			switch c := client.(type) {
			case *OllamaClient:
				gotType, gotBaseURL = ProviderOllama, c.baseURL
			case *LMStudioClient:
				gotType, gotBaseURL = ProviderLMStudio, c.baseURL
			default:
				t.Fatalf("unexpected client type %T", client)
			}
			if gotType != tt.wantType {
				t.Errorf("provider = %s, want %s", gotType, tt.wantType)
			}
			if gotBaseURL != tt.wantBaseURL {
				t.Errorf("baseURL = %q, want %q", gotBaseURL, tt.wantBaseURL)
			}
		})
	}
}

func TestNewLMStudioClient_APIKeyFromEnv(t *testing.T) {
	t.Setenv("LMSTUDIO_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	if got := apiKeyFromEnv(); got != placeholderAPIKey {
		t.Errorf("apiKeyFromEnv() = %q, want placeholder", got)
	}

	t.Setenv("OPENAI_API_KEY", "sk-openai")
	if got := apiKeyFromEnv(); got != "sk-openai" {
		t.Errorf("apiKeyFromEnv() = %q, want sk-openai", got)
	}

	t.Setenv("LMSTUDIO_API_KEY", "sk-lm")
	if got := apiKeyFromEnv(); got != "sk-lm" {
		t.Errorf("apiKeyFromEnv() = %q, want sk-lm", got)
	}
}

func TestNewLMStudioClient_EmptyModel(t *testing.T) {
	if _, err := NewLMStudioClient(" ", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}
