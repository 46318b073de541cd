package oracle

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaConfig configures a local Ollama server. An empty ServerURL falls
// back to the OLLAMA_HOST environment variable, then to the client default,
// http://localhost:11434.
type OllamaConfig struct {
	ServerURL string
	Model     string
}

type OllamaCompleter struct {
	llm *ollama.LLM
}

func NewOllamaCompleter(cfg OllamaConfig) (*OllamaCompleter, error) {
	model := cfg.Model
	if model == "" {
		model = "llama3"
	}

	serverURL := cfg.ServerURL
	if serverURL == "" {
		serverURL = os.Getenv("OLLAMA_HOST")
	}

	options := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		options = append(options, ollama.WithServerURL(serverURL))
	}

	llm, err := ollama.New(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ollama: %w", err)
	}
	return &OllamaCompleter{llm: llm}, nil
}

func (c *OllamaCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithJSONMode())
	if err != nil {
		return "", fmt.Errorf("failed to complete prompt: %w", err)
	}
	return answer, nil
}
