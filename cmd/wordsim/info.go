package main

import (
	"fmt"
	"os"

	"github.com/arakotom/lectures-labs/internal/config"
	"github.com/arakotom/lectures-labs/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

// InfoResponse is the response for the info command.
type InfoResponse struct {
	Words          int    `json:"words"`
	Dimension      int    `json:"dimension"`
	Source         string `json:"source,omitempty"`
	Cached         bool   `json:"cached"`
	CachePath      string `json:"cache_path,omitempty"`
	CacheSizeBytes int64  `json:"cache_size_bytes,omitempty"`
	CacheCreated   string `json:"cache_created,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show embedding table metadata",
	Long:  `Show the loaded table's vocabulary size and dimension, plus cache details.`,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	table := mustLoadTable()

	resp := InfoResponse{
		Words:     table.Len(),
		Dimension: table.Dim(),
		Source:    embeddingsPath(),
	}

	if cachePath := config.CacheDBPath(); cachePath != "" && storage.Exists(cachePath) {
		if db, err := storage.OpenDB(cachePath); err == nil {
			if info, err := db.Info(); err == nil {
				resp.Cached = true
				resp.CachePath = cachePath
				resp.Source = info.SourcePath
				resp.CacheCreated = info.CreatedAt.Format("2006-01-02 15:04:05")
				if st, err := os.Stat(cachePath); err == nil {
					resp.CacheSizeBytes = st.Size()
				}
			}
			db.Close()
		}
	}

	if humanOutput {
		fmt.Printf("Vocabulary: %d words, dimension %d\n", resp.Words, resp.Dimension)
		if resp.Source != "" {
			fmt.Printf("Source: %s\n", resp.Source)
		}
		if resp.Cached {
			fmt.Printf("Cache: %s (%s, built %s)\n", resp.CachePath, formatBytes(resp.CacheSizeBytes), resp.CacheCreated)
		} else {
			fmt.Printf("Cache: not built (run 'wordsim build')\n")
		}
	} else {
		outputJSON(resp)
	}

	return nil
}
