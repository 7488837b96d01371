// README: Config loader with env defaults for HTTP, stores, oracle and maps.
package config

import (
	"os"
	"strconv"
)

type OracleConfig struct {
	// GeminiKey enables the oracle-assisted selector. When empty the
	// deterministic baseline selector is used instead.
	GeminiKey      string
	TimeoutSeconds int
}

type NegotiatorConfig struct {
	DefaultStrategy string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	// DB is optional; when DSN is empty the in-memory telemetry fixtures are used.
	DB struct {
		DSN string
	}
	// Redis is optional; when Addr is empty session anchors stay in memory.
	Redis struct {
		Addr string
	}
	Oracle     OracleConfig
	Negotiator NegotiatorConfig
	Maps       struct {
		APIKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("GRIDPASS_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("GRIDPASS_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("GRIDPASS_REDIS_ADDR", "")
	cfg.Oracle.GeminiKey = envOrDefault("GEMINI_API_KEY", "")
	cfg.Oracle.TimeoutSeconds = envOrDefaultInt("GRIDPASS_ORACLE_TIMEOUT_SEC", 10)
	cfg.Negotiator.DefaultStrategy = envOrDefault("GRIDPASS_DEFAULT_STRATEGY", "balanced")
	cfg.Maps.APIKey = envOrDefault("MAPS_API_KEY", "")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
