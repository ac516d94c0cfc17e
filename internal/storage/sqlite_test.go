package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arakotom/lectures-labs/internal/embedding"
)

// writeSource writes a small embeddings file and returns its path.
func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vectors.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing source file: %v", err)
	}
	return path
}

func testTable(t *testing.T) *embedding.Table {
	t.Helper()
	table, err := embedding.NewTable(
		[]string{"cat", "dog", "rock"},
		[]float32{1, 0, 0.9, 0.1, 0, 1},
		2,
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return table
}

func TestSaveAndLoadTable(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "cat 1 0\ndog 0.9 0.1\nrock 0 1\n")

	db, err := OpenDB(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	table := testTable(t)
	if err := db.SaveTable(table, source); err != nil {
		t.Fatalf("SaveTable failed: %v", err)
	}

	loaded, err := db.LoadTable()
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	if loaded.Len() != table.Len() {
		t.Errorf("loaded %d words, want %d", loaded.Len(), table.Len())
	}
	if loaded.Dim() != table.Dim() {
		t.Errorf("loaded dimension %d, want %d", loaded.Dim(), table.Dim())
	}
	for id := 0; id < table.Len(); id++ {
		if loaded.Word(id) != table.Word(id) {
			t.Errorf("word %d = %s, want %s", id, loaded.Word(id), table.Word(id))
		}
		got, want := loaded.Row(id), table.Row(id)
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("row %d component %d = %f, want %f", id, i, got[i], want[i])
			}
		}
	}
}

func TestSaveTableReplacesContents(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "cat 1 0\n")

	db, err := OpenDB(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	if err := db.SaveTable(testTable(t), source); err != nil {
		t.Fatalf("first SaveTable failed: %v", err)
	}

	small, err := embedding.NewTable([]string{"only"}, []float32{1, 2, 3}, 3)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if err := db.SaveTable(small, source); err != nil {
		t.Fatalf("second SaveTable failed: %v", err)
	}

	loaded, err := db.LoadTable()
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if loaded.Len() != 1 || loaded.Dim() != 3 {
		t.Errorf("loaded %d words of dimension %d, want 1 of 3", loaded.Len(), loaded.Dim())
	}
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "cat 1 0\ndog 0.9 0.1\nrock 0 1\n")

	db, err := OpenDB(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	t.Run("empty cache", func(t *testing.T) {
		if _, err := db.Info(); !errors.Is(err, ErrCacheEmpty) {
			t.Errorf("expected ErrCacheEmpty, got %v", err)
		}
	})

	if err := db.SaveTable(testTable(t), source); err != nil {
		t.Fatalf("SaveTable failed: %v", err)
	}

	info, err := db.Info()
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Version != CurrentCacheVersion {
		t.Errorf("version = %d, want %d", info.Version, CurrentCacheVersion)
	}
	if info.Words != 3 || info.Dimension != 2 {
		t.Errorf("got %d words of dimension %d, want 3 of 2", info.Words, info.Dimension)
	}
	if info.SourcePath != source {
		t.Errorf("source path = %s, want %s", info.SourcePath, source)
	}
	if info.SourceHash == "" {
		t.Error("source hash should be recorded")
	}
	if info.CreatedAt.IsZero() {
		t.Error("created-at should be recorded")
	}
}

func TestStale(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "cat 1 0\ndog 0.9 0.1\nrock 0 1\n")

	db, err := OpenDB(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	if err := db.SaveTable(testTable(t), source); err != nil {
		t.Fatalf("SaveTable failed: %v", err)
	}

	stale, err := db.Stale(source)
	if err != nil {
		t.Fatalf("Stale failed: %v", err)
	}
	if stale {
		t.Error("cache should be fresh right after building")
	}

	// Modify the source file; the recorded hash no longer matches.
	if err := os.WriteFile(source, []byte("cat 1 0\n"), 0644); err != nil {
		t.Fatalf("rewriting source: %v", err)
	}
	stale, err = db.Stale(source)
	if err != nil {
		t.Fatalf("Stale failed: %v", err)
	}
	if !stale {
		t.Error("cache should be stale after the source changed")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")

	if Exists(path) {
		t.Error("Exists should be false before the file is created")
	}

	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	db.Close()

	if !Exists(path) {
		t.Error("Exists should be true after OpenDB created the file")
	}
}

func TestEncodeDecodeVector(t *testing.T) {
	vec := []float32{0, 1, -1, 0.5, 3.14159}

	decoded, err := DecodeVector(EncodeVector(vec))
	if err != nil {
		t.Fatalf("DecodeVector failed: %v", err)
	}
	if len(decoded) != len(vec) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(vec))
	}
	for i := range vec {
		if decoded[i] != vec[i] {
			t.Errorf("component %d = %f, want %f", i, decoded[i], vec[i])
		}
	}

	t.Run("empty vector", func(t *testing.T) {
		if b := EncodeVector(nil); b != nil {
			t.Errorf("EncodeVector(nil) = %v, want nil", b)
		}
		v, err := DecodeVector(nil)
		if err != nil || v != nil {
			t.Errorf("DecodeVector(nil) = (%v, %v), want (nil, nil)", v, err)
		}
	})

	t.Run("invalid blob length", func(t *testing.T) {
		if _, err := DecodeVector([]byte{1, 2, 3}); err == nil {
			t.Error("expected error for blob length not a multiple of 4")
		}
	})
}
