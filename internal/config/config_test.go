package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_Missing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{Dir: dir}, cfg)
	assert.Empty(t, cfg.StorePath())
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "linkgraph.yml", `
dictionary: en
corpus:
  - corpus/en.yml
  - /abs/ru.yml
linkages: 8
maxParseSeconds: 30
minimal: true
store:
  backend: kuzu
  path: graph/db
  expandConnectors: true
logLevel: debug
concurrency: 4
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Dictionary)
	assert.Equal(t, []string{filepath.Join(dir, "corpus/en.yml"), "/abs/ru.yml"}, cfg.CorpusPaths())
	assert.True(t, cfg.Minimal)
	assert.Equal(t, BackendKuzu, cfg.Store.Backend)
	assert.True(t, cfg.Store.ExpandConnectors)
	assert.Equal(t, filepath.Join(dir, "graph/db"), cfg.StorePath())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Concurrency)

	s := cfg.Settings()
	assert.Equal(t, 8, s.DefaultLinkages)
	assert.Zero(t, s.LinkageCeiling, "unset fields stay zero")
	assert.Equal(t, 30*time.Second, s.MaxParseTime)
	assert.Equal(t, "en", s.Language)
}

func TestLoad_YAMLExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "linkgraph.yaml", "dictionary: ru\n")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Dictionary)
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "linkgraph.toml", `
dictionary = "en"
corpus = ["en.yml"]
linkage_ceiling = 100
log_level = "warn"

[store]
backend = "memory"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Dictionary)
	assert.Equal(t, 100, cfg.LinkageCeiling)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, []string{filepath.Join(dir, "en.yml")}, cfg.CorpusPaths())
}

func TestLoad_YAMLWinsOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "linkgraph.yml", "dictionary: yml\n")
	writeFile(t, dir, "linkgraph.toml", "dictionary = \"toml\"\n")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "yml", cfg.Dictionary)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, file, content string
		wantInvalid         bool
	}{
		{"bad yaml", "linkgraph.yml", "linkages: [", false},
		{"bad toml", "linkgraph.toml", "linkages = ", false},
		{"negative linkages", "linkgraph.yml", "linkages: -1\n", true},
		{"negative concurrency", "linkgraph.toml", "concurrency = -2\n", true},
		{"unknown backend", "linkgraph.yml", "store:\n  backend: neo4j\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)
			_, err := Load(dir)
			require.Error(t, err)
			if tt.wantInvalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
