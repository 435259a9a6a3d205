package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overrides file settings with any environment variables present.
func ApplyEnv(cfg *Config) {
	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")

	setString(&cfg.Embedding.Provider, "EMBEDDING_PROVIDER")
	setString(&cfg.Embedding.Model, "EMBEDDING_MODEL")
	setString(&cfg.Embedding.APIKey, "EMBEDDING_API_KEY")
	setString(&cfg.Embedding.BaseURL, "EMBEDDING_BASE_URL")

	setString(&cfg.Postgres.DSN, "POSTGRES_DSN")

	setString(&cfg.Memgraph.URI, "MEMGRAPH_URI")
	setString(&cfg.Memgraph.User, "MEMGRAPH_USER")
	setString(&cfg.Memgraph.Password, "MEMGRAPH_PASSWORD")

	setString(&cfg.Catalog.Backend, "CATALOG_BACKEND")

	setString(&cfg.Vector.Backend, "VECTOR_BACKEND")
	setString(&cfg.Vector.Qdrant.Host, "QDRANT_HOST")
	setInt(&cfg.Vector.Qdrant.Port, "QDRANT_PORT")
	setString(&cfg.Vector.Qdrant.APIKey, "QDRANT_API_KEY")
	setBool(&cfg.Vector.Qdrant.UseTLS, "QDRANT_TLS")
	setString(&cfg.Vector.BoltPath, "BOLT_PATH")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	setString(&cfg.Server.Port, "PORT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Unparseable values are ignored and the existing setting kept.
func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	}
}
