package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arakotom/lectures-labs/internal/config"
	"github.com/arakotom/lectures-labs/internal/embedding"
	"github.com/arakotom/lectures-labs/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

// BuildResult is the response for the build command.
type BuildResult struct {
	Status          string  `json:"status"`
	Words           int     `json:"words"`
	Dimension       int     `json:"dimension"`
	Source          string  `json:"source"`
	CachePath       string  `json:"cache_path"`
	CacheSizeBytes  int64   `json:"cache_size_bytes"`
	DurationSeconds float64 `json:"duration_seconds"`
}

var buildCmd = &cobra.Command{
	Use:   "build [embeddings.txt]",
	Short: "Parse an embeddings file and build the vector cache",
	Long: `Parse a whitespace-delimited embeddings text file and cache the vectors
in a SQLite database.

The file format is one word per line followed by its vector components,
e.g. the GloVe distribution files. With no argument, the configured
embeddings file is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	source := embeddingsPath()
	if len(args) == 1 {
		source = config.ExpandTilde(args[0])
	}
	if source == "" {
		exitWithError(ExitConfigError, "no embeddings file given\n\nPass a file argument or set embeddings_path in %s.", config.Path())
	}

	table, err := embedding.Load(source)
	if err != nil {
		exitWithError(ExitDataError, "loading embeddings: %v", err)
	}

	cachePath := config.CacheDBPath()
	if cachePath == "" {
		exitWithError(ExitConfigError, "cannot determine cache directory")
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(cachePath)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	defer db.Close()

	if err := db.SaveTable(table, source); err != nil {
		exitWithError(ExitError, "saving cache: %v", err)
	}

	var cacheSize int64
	if info, err := os.Stat(cachePath); err == nil {
		cacheSize = info.Size()
	}
	duration := time.Since(startTime)

	if humanOutput {
		fmt.Printf("Build complete:\n")
		fmt.Printf("  Words: %d\n", table.Len())
		fmt.Printf("  Dimension: %d\n", table.Dim())
		fmt.Printf("  Time elapsed: %s\n", formatDuration(duration))
		fmt.Printf("  Cache: %s (%s)\n", cachePath, formatBytes(cacheSize))
	} else {
		outputJSON(BuildResult{
			Status:          "complete",
			Words:           table.Len(),
			Dimension:       table.Dim(),
			Source:          source,
			CachePath:       cachePath,
			CacheSizeBytes:  cacheSize,
			DurationSeconds: duration.Seconds(),
		})
	}

	return nil
}
