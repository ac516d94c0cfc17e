// Package semantic provides cosine-similarity lookup over a word-embedding
// table.
package semantic

import "github.com/arakotom/lectures-labs/internal/embedding"

// Index holds a unit-normalized copy of an embedding table's matrix for
// cosine-similarity queries. Build it once with New; it is read-only and
// safe for concurrent lookups afterwards.
type Index struct {
	table *embedding.Table

	// normalized is row-major like the table's matrix, each row divided by
	// its Euclidean norm. Zero-norm rows stay zero and never match.
	normalized []float32
}

// Result is one ranked neighbor from a similarity query.
type Result struct {
	Word  string  `json:"word"`
	ID    int     `json:"id"`
	Score float32 `json:"score"`
}

// QueryStats reports how a multi-word query resolved against the
// vocabulary.
type QueryStats struct {
	Resolved []string `json:"resolved"`
	Skipped  []string `json:"skipped,omitempty"`
}
