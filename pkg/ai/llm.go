package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Cloud LLM providers supported by ProviderClient
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const anthropicVersion = "2023-06-01"

// generationTemperature is shared by every LLM backend; extraction output
// has to stay deterministic enough to parse as JSON.
const generationTemperature = 0.1

// ProviderClient is a minimal client for the OpenAI and Anthropic chat APIs
type ProviderClient struct {
	provider string
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
}

// NewProviderClient creates a cloud LLM client. baseURL is only overridden
// in tests; pass "" for the real endpoints.
func NewProviderClient(provider, apiKey, model, baseURL string, timeout time.Duration) (*ProviderClient, error) {
	switch provider {
	case ProviderOpenAI:
		if baseURL == "" {
			baseURL = "https://api.openai.com"
		}
	case ProviderAnthropic:
		if baseURL == "" {
			baseURL = "https://api.anthropic.com"
		}
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key provided for %s", provider)
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &ProviderClient{
		provider: provider,
		apiKey:   apiKey,
		model:    model,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends a prompt to the provider and returns the assistant content
func (p *ProviderClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	switch p.provider {
	case ProviderOpenAI:
		return p.completeOpenAI(ctx, system, prompt)
	case ProviderAnthropic:
		return p.completeAnthropic(ctx, system, prompt)
	}
	return "", fmt.Errorf("unsupported provider %q", p.provider)
}

func (p *ProviderClient) completeOpenAI(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	reqBody := openAIRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: generationTemperature,
		MaxTokens:   8000,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var or openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", err
	}
	if len(or.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}
	return or.Choices[0].Message.Content, nil
}

func (p *ProviderClient) completeAnthropic(ctx context.Context, system, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:       p.model,
		MaxTokens:   8000,
		Temperature: generationTemperature,
		System:      system,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("anthropic returned status %d", resp.StatusCode)
	}

	var ar anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", err
	}
	for _, block := range ar.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from anthropic")
}

// Provider returns the provider name
func (p *ProviderClient) Provider() string {
	return p.provider
}

// Model returns the configured model name
func (p *ProviderClient) Model() string {
	return p.model
}
