package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/promptdesk/internal/flagx"
	"github.com/dmitrijs2005/promptdesk/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so they can be written as "24h" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	RecentPromptsLimit    int            `json:"recent_prompts_limit"`
	CORSOrigins           []string       `json:"cors_origins"`
	RateLimit             string         `json:"rate_limit"`
	RedisURL              string         `json:"redis_url"`
	Development           *bool          `json:"development"`
	CompletionURL         string         `json:"completion_url"`
	CompletionModel       string         `json:"completion_model"`
	CompletionTimeout     timex.Duration `json:"completion_timeout"`
	DebugEndpoints        *bool          `json:"debug_endpoints"`
	MetricsEnabled        *bool          `json:"metrics_enabled"`
	LogFormat             string         `json:"log_format"`
	LogLevel              string         `json:"log_level"`
	BackupInterval        timex.Duration `json:"backup_interval"`
	S3AccessKey           string         `json:"s3_access_key"`
	S3SecretKey           string         `json:"s3_secret_key"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson overlays cfg with the file named by -c/-config. Keys absent from
// the file keep their current value. Unreadable or malformed files panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}

	setString(&cfg.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&cfg.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.RateLimit, c.RateLimit)
	setString(&cfg.RedisURL, c.RedisURL)
	setString(&cfg.CompletionURL, c.CompletionURL)
	setString(&cfg.CompletionModel, c.CompletionModel)
	setString(&cfg.LogFormat, c.LogFormat)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.S3AccessKey, c.S3AccessKey)
	setString(&cfg.S3SecretKey, c.S3SecretKey)
	setString(&cfg.S3Bucket, c.S3Bucket)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CompletionTimeout.Duration != 0 {
		cfg.CompletionTimeout = c.CompletionTimeout.Duration
	}
	if c.BackupInterval.Duration != 0 {
		cfg.BackupInterval = c.BackupInterval.Duration
	}
	if c.BcryptCost != 0 {
		cfg.BcryptCost = c.BcryptCost
	}
	if c.RecentPromptsLimit != 0 {
		cfg.RecentPromptsLimit = c.RecentPromptsLimit
	}
	if len(c.CORSOrigins) > 0 {
		cfg.CORSOrigins = c.CORSOrigins
	}
	if c.Development != nil {
		cfg.Development = *c.Development
	}
	if c.DebugEndpoints != nil {
		cfg.DebugEndpoints = *c.DebugEndpoints
	}
	if c.MetricsEnabled != nil {
		cfg.MetricsEnabled = *c.MetricsEnabled
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
