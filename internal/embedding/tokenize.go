package embedding

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeToken canonicalizes a query token for vocabulary lookup:
// trimmed, NFC-normalized, lowercased. Table words themselves are stored
// verbatim; normalization applies only to what the user typed.
func NormalizeToken(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// Lookup resolves a token against the table, retrying with the normalized
// form when the verbatim token is absent.
func (t *Table) Lookup(token string) (int, bool) {
	if id, ok := t.index[token]; ok {
		return id, true
	}
	id, ok := t.index[NormalizeToken(token)]
	return id, ok
}
