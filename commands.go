package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	gamelogPath string

	cfg Config

	rootCmd = &cobra.Command{
		Use:   "drama",
		Short: "Search-guided scene generation for interactive mysteries",
		Long: `drama generates, plays and serves interactive murder mystery
scripts. Scenes come from a language model, picked by a Monte Carlo
tree search over candidate continuations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(configPath)
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate the next scene for a script",
		RunE:  runGenerate, // Defined in main.go
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a script end to end, generating scenes on demand",
		RunE:  runPlay, // Defined in main.go
	}

	experimentCmd = &cobra.Command{
		Use:       "experiment [budget|depth]",
		Short:     "Measure search behavior across a hyperparameter grid",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"budget", "depth"},
		RunE:      runExperiment, // Defined in main.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve scene generation over HTTP",
		RunE:  runServe, // Defined in main.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file")
	generateCmd.Flags().StringVar(&gamelogPath, "gamelog", "", "path to a gamelog to continue from")
	rootCmd.AddCommand(generateCmd, playCmd, experimentCmd, serveCmd)
}
