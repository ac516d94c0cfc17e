package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arakotom/lectures-labs/internal/config"
	"github.com/arakotom/lectures-labs/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status         string `json:"status"`
	Words          int    `json:"words"`
	Dimension      int    `json:"dimension"`
	Source         string `json:"source"`
	CachePath      string `json:"cache_path"`
	CacheSizeBytes int64  `json:"cache_size_bytes"`
	CacheCreated   string `json:"cache_created"`
	Recommendation string `json:"recommendation,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check vector cache health",
	Long: `Check that the vector cache exists, uses the current format, and still
matches the source embeddings file it was built from.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cachePath := config.CacheDBPath()
	if cachePath == "" || !storage.Exists(cachePath) {
		exitWithError(ExitConfigError, "Vector cache not found\n\nRun 'wordsim build <file>' to create it.")
	}

	db, err := storage.OpenDB(cachePath)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	defer db.Close()

	info, err := db.Info()
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrCacheEmpty):
			exitWithError(ExitConfigError, "Vector cache is empty\n\nRun 'wordsim build <file>' to populate it.")
		case errors.Is(err, storage.ErrUnsupportedVersion):
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "reading cache metadata: %v", err)
	}

	var cacheSize int64
	if st, err := os.Stat(cachePath); err == nil {
		cacheSize = st.Size()
	}

	status := "healthy"
	var recommendation string
	exitCode := ExitSuccess

	stale, err := db.Stale(info.SourcePath)
	if err != nil {
		status = "source-missing"
		recommendation = fmt.Sprintf("Source file %s is unreadable; cache remains usable", info.SourcePath)
	} else if stale {
		status = "stale"
		recommendation = "Run 'wordsim build' to rebuild the cache"
		exitCode = ExitCacheStale
	}

	result := CheckResult{
		Status:         status,
		Words:          info.Words,
		Dimension:      info.Dimension,
		Source:         info.SourcePath,
		CachePath:      cachePath,
		CacheSizeBytes: cacheSize,
		CacheCreated:   info.CreatedAt.Format("2006-01-02 15:04:05"),
		Recommendation: recommendation,
	}

	if humanOutput {
		fmt.Printf("Cache status: %s\n", result.Status)
		fmt.Printf("  Words: %d\n", result.Words)
		fmt.Printf("  Dimension: %d\n", result.Dimension)
		fmt.Printf("  Source: %s\n", result.Source)
		fmt.Printf("  Cache: %s (%s)\n", result.CachePath, formatBytes(result.CacheSizeBytes))
		fmt.Printf("  Created: %s\n", result.CacheCreated)
		if result.Recommendation != "" {
			fmt.Printf("\n%s\n", result.Recommendation)
		}
	} else {
		outputJSON(result)
	}

	if exitCode != ExitSuccess {
		os.Exit(exitCode)
	}
	return nil
}
