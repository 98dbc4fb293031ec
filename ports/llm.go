package ports

import "context"

// UsageData represents raw usage data from LLM provider APIs
type UsageData struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
	Provider         string `json:"provider"`
}

// Generation is a generated narrative with optional usage data
type Generation struct {
	Content string
	Usage   *UsageData
}

// TextGenerator turns an analysis digest prompt into narrative text. It is
// the only collaborator that talks to the network.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}
