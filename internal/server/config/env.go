package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptdesk/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv loads a dotenv file (the -env flag, or ./.env when present) into
// the process environment without overriding variables that are already
// set, then copies recognised variables into cfg.
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	applyEnv(cfg, os.LookupEnv)
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("JWT_SECRET", &cfg.SecretKey)
	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("HTTP_ADDR", &cfg.EndpointAddrHTTP)
	str("GRPC_ADDR", &cfg.EndpointAddrGRPC)
	str("RATE_LIMIT", &cfg.RateLimit)
	str("REDIS_URL", &cfg.RedisURL)
	str("OLLAMA_URL", &cfg.CompletionURL)
	str("OLLAMA_MODEL", &cfg.CompletionModel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("S3_ACCESS_KEY", &cfg.S3AccessKey)
	str("S3_SECRET_KEY", &cfg.S3SecretKey)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_REGION", &cfg.S3Region)
	str("S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)

	if v, ok := lookup("SERVER_PORT"); ok && v != "" {
		cfg.EndpointAddrHTTP = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v, ok := lookup("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenValidityDuration = d
		}
	}
	if v, ok := lookup("BACKUP_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.BackupInterval = d
		}
	}
	if v, ok := lookup("RECENT_PROMPTS_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RecentPromptsLimit = n
		}
	}
	if v, ok := lookup("DEBUG_ENDPOINTS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DebugEndpoints = b
		}
	}
}

// splitList parses a comma-separated list, trimming blanks and trailing
// slashes from origins.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
