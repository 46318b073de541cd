package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"drama/agent"
	"drama/engine"
	"drama/experiments"
	"drama/oracle"
	"drama/script"
	"drama/searcher"
	"drama/server"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(cfg.Script)
	if err != nil {
		return err
	}

	glog := script.NewGameLog()
	if gamelogPath != "" {
		glog, err = script.LoadGameLog(gamelogPath)
		if err != nil {
			return err
		}
	}

	writer, err := createScriptwriter()
	if err != nil {
		return err
	}

	scene, err := writer.GenerateScene(cmd.Context(), sc, glog)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("failed to render scene: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(cfg.Script)
	if err != nil {
		return err
	}

	writer, err := createScriptwriter()
	if err != nil {
		return err
	}

	d := engine.NewDirector(sc, writer, nil)
	if err := d.Run(cmd.Context()); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.OutputDir, fmt.Sprintf("gamelog_%d.json", time.Now().Unix()))
	if err := d.Log.Save(path); err != nil {
		return err
	}

	log.Info().Msgf("saved playthrough to %s", path)
	return nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	name := "budget"
	if len(args) > 0 {
		name = args[0]
	}

	switch name {
	case "budget":
		return experiments.RunBudgetExperiment()
	case "depth":
		return experiments.RunDepthExperiment()
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	writer, err := createScriptwriter()
	if err != nil {
		return err
	}
	return server.New(writer, cfg.Listen).Start()
}

func createScriptwriter() (*agent.Scriptwriter, error) {
	completer, err := createCompleter()
	if err != nil {
		return nil, err
	}
	o := oracle.NewLLMOracle(completer)
	return agent.NewScriptwriter(createMCTS(o), o), nil
}

func createCompleter() (oracle.Completer, error) {
	switch cfg.Provider {
	case "ollama":
		return oracle.NewOllamaCompleter(oracle.OllamaConfig{
			ServerURL: cfg.BaseURL,
			Model:     cfg.Model,
		})
	default:
		return oracle.NewOpenAICompleter(oracle.OpenAIConfig{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
		})
	}
}

func createMCTS(o oracle.Oracle) *searcher.MCTS {
	options := []searcher.Option{}

	if cfg.Iterations > 0 {
		options = append(options, searcher.WithIterations(cfg.Iterations))
	}
	if cfg.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(cfg.MaxDepth))
	}
	if cfg.Weight > 0 {
		options = append(options, searcher.WithExplorationWeight(cfg.Weight))
	}
	if cfg.Candidates > 0 {
		options = append(options, searcher.WithCandidates(cfg.Candidates))
	}

	options = append(options, searcher.WithMetrics(searcher.NewCollector()))
	return searcher.NewMCTS(o, options...)
}
