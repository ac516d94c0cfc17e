package embedding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single embedding file line. 300-dimension vectors in
// text form stay well under this.
const maxLineBytes = 1 << 20

// Load reads a whitespace-delimited embedding file: one word per line,
// followed by its vector components. The vector dimension is fixed by the
// first line.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening embeddings file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse reads embedding lines from r and builds a Table. Ids are assigned
// in read order, starting at 0. Any line whose field count disagrees with
// the first line, or whose components fail to parse as floats, is fatal.
// A word repeated later in the file keeps its first id; the later line is
// skipped (large public embedding dumps contain a handful of duplicates).
func Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var (
		words []string
		data  []float32
		dim   int
		seen  = make(map[string]struct{})
		line  int
	)

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected word followed by vector components", line)
		}

		word := fields[0]
		if dim == 0 {
			dim = len(fields) - 1
		} else if len(fields)-1 != dim {
			return nil, fmt.Errorf("line %d: got %d components, want %d", line, len(fields)-1, dim)
		}

		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}

		for _, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing component %q: %w", line, field, err)
			}
			data = append(data, float32(v))
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading embeddings: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no embedding rows found")
	}

	return NewTable(words, data, dim)
}
