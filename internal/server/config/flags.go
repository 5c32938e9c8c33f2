package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/promptdesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":3001")
//	-g string   gRPC health bind address
//	-d string   database DSN (SQLite path or postgres:// URL)
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-l int      recent prompts limit
//	-r string   rate limit per client IP ("100-M"), empty disables
//	-o string   comma-separated CORS origins
//	-m string   completion service base URL
//	-n string   completion model name
//	-debug-endpoints  expose /api/debug/users
//	-dev              development mode (relaxed security headers)
func parseFlags(config *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:],
		[]string{"-a", "-g", "-d", "-s", "-t", "-l", "-r", "-o", "-m", "-n"},
		[]string{"-debug-endpoints", "-dev"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity duration (in minutes)")

	fs.IntVar(&config.RecentPromptsLimit, "l", config.RecentPromptsLimit, "recent prompts limit")
	fs.StringVar(&config.RateLimit, "r", config.RateLimit, "rate limit per IP, e.g. 100-M")

	origins := fs.String("o", "", "comma-separated CORS origins")

	fs.StringVar(&config.CompletionURL, "m", config.CompletionURL, "completion service URL")
	fs.StringVar(&config.CompletionModel, "n", config.CompletionModel, "completion model")
	fs.BoolVar(&config.DebugEndpoints, "debug-endpoints", config.DebugEndpoints, "expose debug endpoints")
	fs.BoolVar(&config.Development, "dev", config.Development, "development mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	if *origins != "" {
		config.CORSOrigins = splitList(*origins)
	}
}
