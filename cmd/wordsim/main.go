// Package main provides the wordsim CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// embeddingsFlag overrides the configured embeddings file path
var embeddingsFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordsim",
	Short: "Explore pre-trained word embeddings",
	Long: `wordsim is a CLI for exploring pre-trained word embeddings such as GloVe.

It loads a whitespace-delimited embeddings text file, caches the parsed
vectors in a SQLite database for fast reloads, and answers nearest-neighbor
queries by cosine similarity. All commands output JSON by default for easy
integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVarP(&embeddingsFlag, "embeddings", "e", "", "Path to the embeddings text file (overrides config)")
	rootCmd.Version = Version
}
