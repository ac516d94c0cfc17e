package semantic

import (
	"fmt"
	"math"
	"sort"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denominator := float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB)))
	if denominator == 0 {
		return 0
	}

	return dot / denominator
}

// ResolveTerms splits query terms into those found in the vocabulary and
// those skipped as absent.
func (idx *Index) ResolveTerms(terms []string) QueryStats {
	var stats QueryStats
	for _, term := range terms {
		if id, ok := idx.table.Lookup(term); ok {
			stats.Resolved = append(stats.Resolved, idx.table.Word(id))
		} else {
			stats.Skipped = append(stats.Skipped, term)
		}
	}
	return stats
}

// MostSimilar returns the limit nearest vocabulary words to the query by
// cosine similarity. A multi-word query averages the normalized vectors of
// the terms that resolve; absent terms are skipped. When no term resolves
// it returns ErrNoQueryTerms. Results are ordered by descending score, ties
// broken by ascending vocabulary id. Query words appear in their own
// results unless excludeQuery is set.
func (idx *Index) MostSimilar(terms []string, limit int, excludeQuery bool) ([]Result, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("semantic: limit must be positive, got %d", limit)
	}

	query := make([]float32, idx.Dim())
	queryIDs := make(map[int]struct{}, len(terms))
	resolved := 0
	for _, term := range terms {
		id, ok := idx.table.Lookup(term)
		if !ok {
			continue
		}
		row := idx.normalizedRow(id)
		for i := range query {
			query[i] += row[i]
		}
		queryIDs[id] = struct{}{}
		resolved++
	}
	if resolved == 0 {
		return nil, ErrNoQueryTerms
	}
	if resolved > 1 {
		inv := 1 / float32(resolved)
		for i := range query {
			query[i] *= inv
		}
	}

	return idx.searchNormalized(query, limit, excludeQuery, queryIDs), nil
}

// Search returns the limit nearest vocabulary words to an arbitrary query
// vector. The query is normalized before scanning, so scores are cosine
// similarities.
func (idx *Index) Search(vec []float32, limit int) ([]Result, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("semantic: limit must be positive, got %d", limit)
	}
	if len(vec) != idx.Dim() {
		return nil, fmt.Errorf("semantic: query dimension mismatch: got %d, want %d", len(vec), idx.Dim())
	}
	query := make([]float32, len(vec))
	copy(query, vec)
	normalizeRow(query)
	return idx.searchNormalized(query, limit, false, nil), nil
}

// searchNormalized scans every normalized row, keeping a bounded candidate
// set. The scan visits ids in ascending order, so skipping candidates that
// merely tie the current minimum preserves the ascending-id tie-break.
func (idx *Index) searchNormalized(query []float32, limit int, excludeQuery bool, queryIDs map[int]struct{}) []Result {
	count := idx.Len()
	dim := idx.Dim()
	if limit > count {
		limit = count
	}

	type candidate struct {
		id    int
		score float32
	}
	best := make([]candidate, 0, limit)
	minScore := float32(math.Inf(1))
	minIdx := -1

	// The weakest candidate is the lowest score; among equal scores the
	// highest id, so that eviction respects the ascending-id tie-break.
	updateMin := func() {
		minIdx = 0
		minScore = best[0].score
		for i := 1; i < len(best); i++ {
			if best[i].score < minScore ||
				(best[i].score == minScore && best[i].id > best[minIdx].id) {
				minScore = best[i].score
				minIdx = i
			}
		}
	}

	for id := 0; id < count; id++ {
		if excludeQuery {
			if _, skip := queryIDs[id]; skip {
				continue
			}
		}
		row := idx.normalized[id*dim : (id+1)*dim]
		var score float32
		for i := range query {
			score += query[i] * row[i]
		}
		if len(best) < limit {
			best = append(best, candidate{id: id, score: score})
			if len(best) == limit {
				updateMin()
			}
			continue
		}
		if score <= minScore {
			continue
		}
		best[minIdx] = candidate{id: id, score: score}
		updateMin()
	}

	sort.Slice(best, func(i, j int) bool {
		if best[i].score == best[j].score {
			return best[i].id < best[j].id
		}
		return best[i].score > best[j].score
	})

	results := make([]Result, len(best))
	for i, c := range best {
		results[i] = Result{Word: idx.table.Word(c.id), ID: c.id, Score: c.score}
	}
	return results
}
