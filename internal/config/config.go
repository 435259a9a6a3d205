package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type LLMConfig struct {
	Provider    string  `toml:"provider" yaml:"provider"`
	Model       string  `toml:"model" yaml:"model"`
	APIKey      string  `toml:"api_key" yaml:"api_key"`
	BaseURL     string  `toml:"base_url" yaml:"base_url"`
	MaxTokens   int     `toml:"max_tokens" yaml:"max_tokens"`
	Temperature float32 `toml:"temperature" yaml:"temperature"`
}

type EmbeddingConfig struct {
	Provider  string `toml:"provider" yaml:"provider"`
	Model     string `toml:"model" yaml:"model"`
	APIKey    string `toml:"api_key" yaml:"api_key"`
	BaseURL   string `toml:"base_url" yaml:"base_url"`
	Dimension int    `toml:"dimension" yaml:"dimension"`
}

type PostgresConfig struct {
	DSN          string `toml:"dsn" yaml:"dsn"`
	MaxConns     int32  `toml:"max_conns" yaml:"max_conns"`
	MinConns     int32  `toml:"min_conns" yaml:"min_conns"`
	ConnLifetime string `toml:"conn_lifetime" yaml:"conn_lifetime"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" yaml:"uri"`
	User     string `toml:"user" yaml:"user"`
	Password string `toml:"password" yaml:"password"`
}

// CatalogConfig selects where course and prerequisite rows are read from.
type CatalogConfig struct {
	Backend    string `toml:"backend" yaml:"backend"`       // postgres | graph
	EdgeTable  string `toml:"edge_table" yaml:"edge_table"` // course_course_relationship | prerequisite
	MatchLimit int    `toml:"match_limit" yaml:"match_limit"`
}

type QdrantConfig struct {
	Host   string `toml:"host" yaml:"host"`
	Port   int    `toml:"port" yaml:"port"`
	APIKey string `toml:"api_key" yaml:"api_key"`
	UseTLS bool   `toml:"use_tls" yaml:"use_tls"`
}

type VectorConfig struct {
	Backend    string       `toml:"backend" yaml:"backend"` // qdrant | pgvector | bolt
	Collection string       `toml:"collection" yaml:"collection"`
	Qdrant     QdrantConfig `toml:"qdrant" yaml:"qdrant"`
	BoltPath   string       `toml:"bolt_path" yaml:"bolt_path"`
}

// DescriptionBudgets bounds the description characters rendered per entry.
type DescriptionBudgets struct {
	Prerequisite int `toml:"prerequisite" yaml:"prerequisite"`
	Dependent    int `toml:"dependent" yaml:"dependent"`
	Semantic     int `toml:"semantic" yaml:"semantic"`
}

type RouterConfig struct {
	TopK                 int                `toml:"top_k" yaml:"top_k"`
	OverFetch            int                `toml:"over_fetch" yaml:"over_fetch"`
	PrerequisiteFallback bool               `toml:"prerequisite_fallback" yaml:"prerequisite_fallback"`
	DependentFallback    bool               `toml:"dependent_fallback" yaml:"dependent_fallback"`
	Descriptions         DescriptionBudgets `toml:"descriptions" yaml:"descriptions"`
}

type IndexerConfig struct {
	BatchSize   int `toml:"batch_size" yaml:"batch_size"`
	Concurrency int `toml:"concurrency" yaml:"concurrency"`
	Limit       int `toml:"limit" yaml:"limit"`
}

type PromptConfig struct {
	System string `toml:"system" yaml:"system"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // json | console
}

type ServerConfig struct {
	Port string `toml:"port" yaml:"port"`
	Mode string `toml:"mode" yaml:"mode"`
}

type Config struct {
	LLM       LLMConfig       `toml:"llm" yaml:"llm"`
	Embedding EmbeddingConfig `toml:"embedding" yaml:"embedding"`
	Postgres  PostgresConfig  `toml:"postgres" yaml:"postgres"`
	Memgraph  MemgraphConfig  `toml:"memgraph" yaml:"memgraph"`
	Catalog   CatalogConfig   `toml:"catalog" yaml:"catalog"`
	Vector    VectorConfig    `toml:"vector" yaml:"vector"`
	Router    RouterConfig    `toml:"router" yaml:"router"`
	Indexer   IndexerConfig   `toml:"indexer" yaml:"indexer"`
	Prompts   PromptConfig    `toml:"prompts" yaml:"prompts"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
}

// Load reads the file at path on top of Defaults, applies environment
// overrides and validates the result. TOML is assumed unless the file has a
// .yaml or .yml extension.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Defaults plus environment
// overrides when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Defaults()
		ApplyEnv(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}
