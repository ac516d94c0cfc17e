package main

import (
	"github.com/arakotom/lectures-labs/internal/config"
	"github.com/arakotom/lectures-labs/internal/embedding"
	"github.com/arakotom/lectures-labs/internal/semantic"
	"github.com/arakotom/lectures-labs/internal/storage"
)

// embeddingsPath returns the embeddings file path: the --embeddings flag
// takes precedence, then WORDSIM_EMBEDDINGS, then the config file.
func embeddingsPath() string {
	if embeddingsFlag != "" {
		return config.ExpandTilde(embeddingsFlag)
	}
	return config.EmbeddingsPath()
}

// mustLoadTable loads the embedding table, preferring the SQLite cache when
// it exists and loads cleanly, and falling back to a direct parse of the
// configured embeddings file.
func mustLoadTable() *embedding.Table {
	if cachePath := config.CacheDBPath(); cachePath != "" && storage.Exists(cachePath) {
		if db, err := storage.OpenDB(cachePath); err == nil {
			table, err := db.LoadTable()
			db.Close()
			if err == nil {
				return table
			}
		}
	}

	path := embeddingsPath()
	if path == "" {
		exitWithError(ExitConfigError, "no embeddings configured\n\nSet embeddings_path in %s, export %s, or pass --embeddings.\nRun 'wordsim build <file>' to parse and cache an embeddings file.",
			config.Path(), config.EnvEmbeddings)
	}

	table, err := embedding.Load(path)
	if err != nil {
		exitWithError(ExitDataError, "loading embeddings: %v", err)
	}
	return table
}

// mustLoadIndex builds the similarity index over the loaded table.
func mustLoadIndex() *semantic.Index {
	return semantic.New(mustLoadTable())
}
