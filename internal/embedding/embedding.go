// Package embedding loads pre-trained word embeddings from text files.
package embedding

import "fmt"

// Table holds a word-embedding table: a vocabulary index mapping each word
// to a dense integer id, and a row-major matrix whose row i is the vector
// for the word with id i. Tables are immutable after construction.
type Table struct {
	words []string
	index map[string]int
	data  []float32 // len(words) * dim, row-major
	dim   int
}

// NewTable builds a table from parallel word and vector data. The data slice
// must contain exactly len(words)*dim values, row i belonging to words[i].
func NewTable(words []string, data []float32, dim int) (*Table, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedding: dimension must be positive, got %d", dim)
	}
	if len(data) != len(words)*dim {
		return nil, fmt.Errorf("embedding: matrix size mismatch: %d values for %d words of dimension %d",
			len(data), len(words), dim)
	}
	index := make(map[string]int, len(words))
	for i, w := range words {
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("embedding: duplicate word %q", w)
		}
		index[w] = i
	}
	return &Table{words: words, index: index, data: data, dim: dim}, nil
}

// Len returns the vocabulary size.
func (t *Table) Len() int { return len(t.words) }

// Dim returns the vector dimensionality.
func (t *Table) Dim() int { return t.dim }

// ID returns the vocabulary id for a word.
func (t *Table) ID(word string) (int, bool) {
	id, ok := t.index[word]
	return id, ok
}

// Word returns the word for a vocabulary id. It panics if id is out of
// range, matching slice indexing semantics.
func (t *Table) Word(id int) string { return t.words[id] }

// Vector returns the embedding row for a word, or false if the word is not
// in the vocabulary. The returned slice aliases the table's backing array
// and must not be modified.
func (t *Table) Vector(word string) ([]float32, bool) {
	id, ok := t.index[word]
	if !ok {
		return nil, false
	}
	return t.Row(id), true
}

// Row returns the embedding row for a vocabulary id.
func (t *Table) Row(id int) []float32 {
	return t.data[id*t.dim : (id+1)*t.dim]
}

// Words returns the vocabulary in id order. The returned slice is shared
// and must not be modified.
func (t *Table) Words() []string { return t.words }

// Data returns the flat row-major matrix. Shared, read-only.
func (t *Table) Data() []float32 { return t.data }
