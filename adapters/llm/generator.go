package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"diarylens/internal"
	"diarylens/ports"
)

// DefaultSystemPrompt frames the generator as a reader of aggregate numbers,
// not a clinician.
const DefaultSystemPrompt = "You summarise statistics computed from a personal diary. " +
	"Describe trends in plain language, stay close to the numbers given, " +
	"and never offer a diagnosis or clinical judgement."

// Config holds LLM adapter configuration. Credentials are passed here
// explicitly.
type Config struct {
	Model        string        // e.g., "gpt-4o-mini"
	APIKey       string        // OpenAI API key
	BaseURL      string        // Optional override (default: https://api.openai.com/v1)
	Temperature  float64       // 0.0-1.0, lower = more deterministic
	MaxTokens    int           // Max tokens in response
	Timeout      time.Duration // Request timeout
	SystemPrompt string
}

// Generator implements TextGenerator over an OpenAI-compatible endpoint
type Generator struct {
	config Config
	client chatClient
	logger *internal.Logger
}

var _ ports.TextGenerator = (*Generator)(nil)

// NewGenerator creates a generator; it fails without an API key
func NewGenerator(config Config) (*Generator, error) {
	client, err := newChatClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return newGenerator(config, client), nil
}

func newGenerator(config Config, client chatClient) *Generator {
	if config.SystemPrompt == "" {
		config.SystemPrompt = DefaultSystemPrompt
	}
	return &Generator{
		config: config,
		client: client,
		logger: internal.DefaultLogger.WithComponent("llm"),
	}
}

// Generate sends prompt and returns the trimmed completion
func (g *Generator) Generate(ctx context.Context, prompt string) (*ports.Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("empty prompt")
	}

	start := time.Now()
	out, err := g.client.ChatCompletionWithUsage(ctx, g.config.Model, g.config.SystemPrompt, prompt, g.config.MaxTokens)
	if err != nil {
		g.logger.Warn("generation failed after %s: %v", time.Since(start), err)
		return nil, err
	}
	out.Content = strings.TrimSpace(out.Content)
	if out.Content == "" {
		return nil, fmt.Errorf("empty completion")
	}

	if out.Usage != nil {
		g.logger.Debug("generation took %s (%d tokens)", time.Since(start), out.Usage.TotalTokens)
	}
	return out, nil
}

// MockGenerator is a TextGenerator for tests and offline runs
type MockGenerator struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors
	Prompts  []string
}

var _ ports.TextGenerator = (*MockGenerator)(nil)

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (*ports.Generation, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Response != "" {
		return &ports.Generation{Content: m.Response}, nil
	}
	return &ports.Generation{Content: "No notable change in the period analysed."}, nil
}
