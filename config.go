package main

import (
	"fmt"
	"os"

	"drama/searcher"

	"gopkg.in/yaml.v3"
)

// Config drives every command. Fields left out of the config file keep
// their defaults. The OpenAI API key is read from OPENAI_API_KEY, never
// from the file.
type Config struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`

	Iterations int     `yaml:"iterations"`
	MaxDepth   int     `yaml:"max_depth"`
	Weight     float64 `yaml:"exploration_weight"`
	Candidates int     `yaml:"candidates"`

	Script    string `yaml:"script"`
	OutputDir string `yaml:"output_dir"`
	Listen    string `yaml:"listen"`
	LogLevel  string `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Provider:    "openai",
		Temperature: 0.9,
		Iterations:  searcher.DefaultIterations,
		MaxDepth:    searcher.DefaultMaxDepth,
		Weight:      searcher.DefaultExplorationWeight,
		Candidates:  searcher.DefaultCandidates,
		Script:      "script.yaml",
		OutputDir:   "output",
		Listen:      ":8080",
		LogLevel:    "info",
	}
}

// loadConfig reads path over the defaults. A missing file just keeps the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
