package relay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Options are the sampling settings sent with every completion.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	TopK        int
	TopP        float64
	Timeout     time.Duration
}

// DefaultOptions mirror the settings the chat product has always used.
func DefaultOptions() Options {
	return Options{
		Model:       "mistral",
		Temperature: 0.7,
		MaxTokens:   500,
		TopK:        40,
		TopP:        0.9,
		Timeout:     2 * time.Minute,
	}
}

// OllamaCompleter talks to an Ollama server through langchaingo. Requests
// are single-shot: no streaming, no retries.
type OllamaCompleter struct {
	llm  llms.Model
	opts Options
}

func NewOllamaCompleter(serverURL string, opts Options) (*OllamaCompleter, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(opts.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	return &OllamaCompleter{llm: llm, opts: opts}, nil
}

func (c *OllamaCompleter) Complete(ctx context.Context, message string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.llm, message,
		llms.WithTemperature(c.opts.Temperature),
		llms.WithMaxTokens(c.opts.MaxTokens),
		llms.WithTopK(c.opts.TopK),
		llms.WithTopP(c.opts.TopP),
	)
}
