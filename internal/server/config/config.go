// Package config handles configuration for the server component:
// defaults, an optional JSON file, environment (.env) and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ulule/limiter/v3"
)

// Config holds runtime settings for the PromptDesk server.
//
// SecretKey has no default: the server refuses to start until it is provided
// through JSON, JWT_SECRET or -s.
type Config struct {
	EndpointAddrHTTP      string
	EndpointAddrGRPC      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	RecentPromptsLimit    int

	CORSOrigins []string
	RateLimit   string
	RedisURL    string
	Development bool

	CompletionURL     string
	CompletionModel   string
	CompletionTimeout time.Duration

	DebugEndpoints bool
	MetricsEnabled bool
	LogFormat      string
	LogLevel       string

	BackupInterval time.Duration
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3001"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "promptdesk.db"
	c.TokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
	c.RecentPromptsLimit = 10
	c.CORSOrigins = []string{"http://localhost:3000"}
	c.RateLimit = "100-M"
	c.CompletionURL = "http://localhost:11434"
	c.CompletionModel = "mistral"
	c.CompletionTimeout = 2 * time.Minute
	c.MetricsEnabled = true
	c.LogFormat = "json"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

var (
	ErrMissingSecret = errors.New("secret key is required (set JWT_SECRET, -s or secret_key)")
	errBadConfig     = errors.New("invalid configuration")
)

// Validate checks settings that cannot be defaulted safely.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecret
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("%w: token validity must be positive", errBadConfig)
	}
	if c.RecentPromptsLimit < 1 {
		return fmt.Errorf("%w: recent prompts limit must be at least 1", errBadConfig)
	}
	if c.BcryptCost < 10 {
		return fmt.Errorf("%w: bcrypt cost must be at least 10", errBadConfig)
	}
	if c.RateLimit != "" {
		if _, err := limiter.NewRateFromFormatted(c.RateLimit); err != nil {
			return fmt.Errorf("%w: rate limit %q: %v", errBadConfig, c.RateLimit, err)
		}
	}
	if c.BackupInterval > 0 && c.S3Bucket == "" {
		return fmt.Errorf("%w: backups need an S3 bucket", errBadConfig)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
