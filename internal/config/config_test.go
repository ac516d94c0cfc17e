package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setTestHome points XDG dirs at temp locations and clears env overrides.
func setTestHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(EnvEmbeddings, "")
	t.Setenv(EnvCacheDir, "")
	ResetCache()
	t.Cleanup(ResetCache)
	return dir
}

func TestPath(t *testing.T) {
	dir := setTestHome(t)

	want := filepath.Join(dir, "config", ConfigDir, ConfigFile)
	if got := Path(); got != want {
		t.Errorf("Path() = %s, want %s", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	setTestHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.EmbeddingsPath != "" || cfg.CacheDir != "" || cfg.DefaultLimit != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	setTestHome(t)

	cfg := &Config{
		EmbeddingsPath: "/data/glove.6B.100d.txt",
		DefaultLimit:   25,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ResetCache()
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.EmbeddingsPath != cfg.EmbeddingsPath {
		t.Errorf("embeddings path = %s, want %s", loaded.EmbeddingsPath, cfg.EmbeddingsPath)
	}
	if loaded.DefaultLimit != 25 {
		t.Errorf("default limit = %d, want 25", loaded.DefaultLimit)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	setTestHome(t)

	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("embeddings_path: [unclosed"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEmbeddingsPathPrecedence(t *testing.T) {
	setTestHome(t)

	cfg := &Config{EmbeddingsPath: "/from/config.txt"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	ResetCache()

	if got := EmbeddingsPath(); got != "/from/config.txt" {
		t.Errorf("EmbeddingsPath() = %s, want config value", got)
	}

	t.Setenv(EnvEmbeddings, "/from/env.txt")
	if got := EmbeddingsPath(); got != "/from/env.txt" {
		t.Errorf("EmbeddingsPath() = %s, env should take precedence", got)
	}
}

func TestCacheDBPath(t *testing.T) {
	dir := setTestHome(t)

	t.Run("defaults to XDG cache home", func(t *testing.T) {
		want := filepath.Join(dir, "cache", ConfigDir, CacheDBFile)
		if got := CacheDBPath(); got != want {
			t.Errorf("CacheDBPath() = %s, want %s", got, want)
		}
	})

	t.Run("env override wins", func(t *testing.T) {
		t.Setenv(EnvCacheDir, "/tmp/override")
		want := filepath.Join("/tmp/override", CacheDBFile)
		if got := CacheDBPath(); got != want {
			t.Errorf("CacheDBPath() = %s, want %s", got, want)
		}
	})
}

func TestLimit(t *testing.T) {
	setTestHome(t)

	if got := Limit(); got != DefaultLimit {
		t.Errorf("Limit() = %d, want default %d", got, DefaultLimit)
	}

	cfg := &Config{DefaultLimit: 5}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	ResetCache()

	if got := Limit(); got != 5 {
		t.Errorf("Limit() = %d, want 5", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tilde prefix", in: "~/data/glove.txt", want: filepath.Join(home, "data/glove.txt")},
		{name: "no tilde", in: "/data/glove.txt", want: "/data/glove.txt"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTilde(tt.in); got != tt.want {
				t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
