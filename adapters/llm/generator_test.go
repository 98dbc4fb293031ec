package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_RequiresKey(t *testing.T) {
	_, err := NewGenerator(Config{Model: "m"})
	assert.Error(t, err)
}

func TestGenerator_AgainstFakeServer(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-test",
			"choices": [{"message": {"content": "  落ち着いた一年でした。 "}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20}
		}`))
	}))
	defer srv.Close()

	g, err := NewGenerator(Config{Model: "gpt-test", APIKey: "sk-test", BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), "digest")
	require.NoError(t, err)
	assert.Equal(t, "落ち着いた一年でした。", out.Content)
	require.NotNil(t, out.Usage)
	assert.Equal(t, 20, out.Usage.TotalTokens)
	assert.Equal(t, "openai", out.Usage.Provider)

	assert.Equal(t, "gpt-test", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, DefaultSystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "digest", got.Messages[1].Content)
}

func TestGenerator_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, err := NewGenerator(Config{Model: "m", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "digest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerator_EmptyPrompt(t *testing.T) {
	g := newGenerator(Config{Model: "m"}, &OpenAIClient{})
	_, err := g.Generate(context.Background(), "  ")
	assert.Error(t, err)
}

func TestMockGenerator(t *testing.T) {
	m := &MockGenerator{Response: "ok"}
	out, err := m.Generate(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Content)

	m.Error = errors.New("down")
	_, err = m.Generate(context.Background(), "p2")
	assert.Error(t, err)
	assert.Equal(t, []string{"p1", "p2"}, m.Prompts)
}
