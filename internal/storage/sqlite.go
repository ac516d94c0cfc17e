// Package storage caches parsed embedding tables in a SQLite database so
// repeated lookups skip the text parse.
package storage

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/arakotom/lectures-labs/internal/embedding"
	_ "modernc.org/sqlite"
)

// Errors returned by cache operations.
var (
	ErrCacheEmpty         = errors.New("vector cache is empty")
	ErrUnsupportedVersion = errors.New("unsupported cache version")
)

// CurrentCacheVersion is the cache format version. Increment when making
// breaking changes to the schema or encoding.
const CurrentCacheVersion = 1

// DB wraps a SQLite database holding one cached embedding table.
type DB struct {
	db *sql.DB
}

// CacheInfo describes the cached table.
type CacheInfo struct {
	Version    int       `json:"version"`
	Dimension  int       `json:"dimension"`
	Words      int       `json:"words"`
	SourcePath string    `json:"source_path"`
	SourceHash string    `json:"source_hash"`
	CreatedAt  time.Time `json:"created_at"`
}

// Exists reports whether a cache database file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// OpenDB opens or creates a cache database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS vectors (
			id INTEGER PRIMARY KEY,
			word TEXT NOT NULL UNIQUE,
			embedding BLOB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveTable replaces the cache contents with the given table. The source
// path and its content hash are recorded for staleness checks.
func (d *DB) SaveTable(t *embedding.Table, sourcePath string) error {
	hash, err := HashFile(sourcePath)
	if err != nil {
		return fmt.Errorf("hashing source file: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vectors`); err != nil {
		return fmt.Errorf("clearing vectors: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM meta`); err != nil {
		return fmt.Errorf("clearing meta: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO vectors(id, word, embedding) VALUES(?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for id := 0; id < t.Len(); id++ {
		if _, err := stmt.Exec(id, t.Word(id), EncodeVector(t.Row(id))); err != nil {
			return fmt.Errorf("inserting vector %d: %w", id, err)
		}
	}

	meta := map[string]string{
		"version":       strconv.Itoa(CurrentCacheVersion),
		"dimension":     strconv.Itoa(t.Dim()),
		"words":         strconv.Itoa(t.Len()),
		"source_path":   sourcePath,
		"source_sha256": hash,
		"created_at":    time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.Exec(`INSERT INTO meta(key, value) VALUES(?, ?)`, key, value); err != nil {
			return fmt.Errorf("writing meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// LoadTable reads the cached table back. Returns ErrCacheEmpty when the
// cache holds nothing and ErrUnsupportedVersion for a format mismatch.
func (d *DB) LoadTable() (*embedding.Table, error) {
	info, err := d.Info()
	if err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`SELECT id, word, embedding FROM vectors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	words := make([]string, 0, info.Words)
	data := make([]float32, 0, info.Words*info.Dimension)
	next := 0
	for rows.Next() {
		var (
			id   int
			word string
			blob []byte
		)
		if err := rows.Scan(&id, &word, &blob); err != nil {
			return nil, fmt.Errorf("scanning vector row: %w", err)
		}
		if id != next {
			return nil, fmt.Errorf("cache corrupt: expected id %d, got %d", next, id)
		}
		vec, err := DecodeVector(blob)
		if err != nil {
			return nil, err
		}
		if len(vec) != info.Dimension {
			return nil, fmt.Errorf("cache corrupt: word %q has dimension %d, want %d", word, len(vec), info.Dimension)
		}
		words = append(words, word)
		data = append(data, vec...)
		next++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading vectors: %w", err)
	}
	if len(words) != info.Words {
		return nil, fmt.Errorf("cache corrupt: %d vectors stored, meta says %d", len(words), info.Words)
	}

	return embedding.NewTable(words, data, info.Dimension)
}

// Info returns the cache metadata.
func (d *DB) Info() (*CacheInfo, error) {
	meta := make(map[string]string)
	rows, err := d.db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("querying meta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning meta row: %w", err)
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}
	if len(meta) == 0 {
		return nil, ErrCacheEmpty
	}

	version, err := strconv.Atoi(meta["version"])
	if err != nil {
		return nil, fmt.Errorf("parsing cache version: %w", err)
	}
	if version != CurrentCacheVersion {
		return nil, fmt.Errorf("%w: got %d, want %d (rebuild with 'wordsim build')",
			ErrUnsupportedVersion, version, CurrentCacheVersion)
	}

	dim, err := strconv.Atoi(meta["dimension"])
	if err != nil {
		return nil, fmt.Errorf("parsing cache dimension: %w", err)
	}
	count, err := strconv.Atoi(meta["words"])
	if err != nil {
		return nil, fmt.Errorf("parsing cache word count: %w", err)
	}
	createdAt, _ := time.Parse(time.RFC3339, meta["created_at"])

	return &CacheInfo{
		Version:    version,
		Dimension:  dim,
		Words:      count,
		SourcePath: meta["source_path"],
		SourceHash: meta["source_sha256"],
		CreatedAt:  createdAt,
	}, nil
}

// Stale reports whether the source file's content no longer matches the
// hash recorded when the cache was built.
func (d *DB) Stale(sourcePath string) (bool, error) {
	info, err := d.Info()
	if err != nil {
		return false, err
	}
	hash, err := HashFile(sourcePath)
	if err != nil {
		return false, fmt.Errorf("hashing source file: %w", err)
	}
	return hash != info.SourceHash, nil
}

// HashFile computes the SHA-256 hash of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
