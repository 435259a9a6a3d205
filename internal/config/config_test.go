package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks the overrides the tests assert on so a developer's shell
// does not leak into them.
func clearEnv(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "LLM_MODEL", "VECTOR_BACKEND", "CATALOG_BACKEND", "BOLT_PATH"} {
		t.Setenv(key, "")
	}
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.toml", `
[llm]
provider = "groq"
model = "llama-3.1-8b-instant"

[router]
top_k = 7

[router.descriptions]
semantic = 300
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, 7, cfg.Router.TopK)
	assert.Equal(t, 300, cfg.Router.Descriptions.Semantic)

	// Untouched keys keep their defaults.
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, 200, cfg.Router.Descriptions.Prerequisite)
	assert.Equal(t, "curriculum", cfg.Vector.Collection)
	assert.True(t, cfg.Router.PrerequisiteFallback)
	assert.False(t, cfg.Router.DependentFallback)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
vector:
  backend: bolt
  bolt_path: /tmp/idx.db
catalog:
  backend: graph
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.Vector.Backend)
	assert.Equal(t, "/tmp/idx.db", cfg.Vector.BoltPath)
	assert.Equal(t, "graph", cfg.Catalog.Backend)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.toml", `
[llm]
provider = "openai"
`)
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("QDRANT_PORT", "7000")
	t.Setenv("QDRANT_TLS", "yes")
	t.Setenv("VECTOR_BACKEND", "pgvector")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, 7000, cfg.Vector.Qdrant.Port)
	assert.True(t, cfg.Vector.Qdrant.UseTLS)
	assert.Equal(t, "pgvector", cfg.Vector.Backend)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults().Router.TopK, cfg.Router.TopK)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad catalog", func(c *Config) { c.Catalog.Backend = "mysql" }, "catalog backend"},
		{"bad edge table", func(c *Config) { c.Catalog.EdgeTable = "edges" }, "edge table"},
		{"bad vector", func(c *Config) { c.Vector.Backend = "faiss" }, "vector backend"},
		{"dimension", func(c *Config) { c.Embedding.Dimension = 768 }, "dimension"},
		{"top k", func(c *Config) { c.Router.TopK = 0 }, "top_k"},
		{"budget", func(c *Config) { c.Router.Descriptions.Dependent = 0 }, "description budgets"},
		{"lifetime", func(c *Config) { c.Postgres.ConnLifetime = "forever" }, "conn_lifetime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
