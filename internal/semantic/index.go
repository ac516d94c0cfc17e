package semantic

import (
	"errors"
	"math"

	"github.com/arakotom/lectures-labs/internal/embedding"
)

// ErrNoQueryTerms is returned when no term of a similarity query resolves
// against the vocabulary.
var ErrNoQueryTerms = errors.New("no resolvable query terms")

// New builds a similarity index over a table, normalizing every row once.
func New(table *embedding.Table) *Index {
	dim := table.Dim()
	normalized := make([]float32, table.Len()*dim)
	copy(normalized, table.Data())
	for i := 0; i < table.Len(); i++ {
		normalizeRow(normalized[i*dim : (i+1)*dim])
	}
	return &Index{table: table, normalized: normalized}
}

// Table returns the underlying embedding table.
func (idx *Index) Table() *embedding.Table { return idx.table }

// Len returns the vocabulary size.
func (idx *Index) Len() int { return idx.table.Len() }

// Dim returns the vector dimensionality.
func (idx *Index) Dim() int { return idx.table.Dim() }

// Vector returns the raw embedding row for a word.
func (idx *Index) Vector(word string) ([]float32, bool) {
	id, ok := idx.table.Lookup(word)
	if !ok {
		return nil, false
	}
	return idx.table.Row(id), true
}

// NormalizedVector returns the unit-normalized row for a word. The returned
// slice aliases the index's backing array and must not be modified.
func (idx *Index) NormalizedVector(word string) ([]float32, bool) {
	id, ok := idx.table.Lookup(word)
	if !ok {
		return nil, false
	}
	return idx.normalizedRow(id), true
}

// Has reports whether a word resolves against the vocabulary.
func (idx *Index) Has(word string) bool {
	_, ok := idx.table.Lookup(word)
	return ok
}

func (idx *Index) normalizedRow(id int) []float32 {
	dim := idx.table.Dim()
	return idx.normalized[id*dim : (id+1)*dim]
}

// normalizeRow divides a vector by its Euclidean norm in place. Zero
// vectors are left unchanged.
func normalizeRow(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
