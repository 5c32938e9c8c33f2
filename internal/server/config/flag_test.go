package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:8080", "-g", ":6000", "-d", "postgres://x", "-s", "secret",
			"-t", "60", "-l", "5", "-r", "10-S", "-o", "http://a.test/, http://b.test",
			"-m", "http://ollama:11434", "-n", "llama3", "-debug-endpoints", "-dev",
		},
			expected: &Config{
				EndpointAddrHTTP:      "127.0.0.1:8080",
				EndpointAddrGRPC:      ":6000",
				DatabaseDSN:           "postgres://x",
				SecretKey:             "secret",
				TokenValidityDuration: 60 * time.Minute,
				RecentPromptsLimit:    5,
				RateLimit:             "10-S",
				CORSOrigins:           []string{"http://a.test", "http://b.test"},
				CompletionURL:         "http://ollama:11434",
				CompletionModel:       "llama3",
				DebugEndpoints:        true,
				Development:           true,
			}},
		{name: "no flags keeps values", args: []string{"cmd"},
			expected: &Config{TokenValidityDuration: 0}},
		{name: "bad int panics", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
