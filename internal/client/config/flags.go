package config

import (
	"flag"
	"os"
	"time"

	"github.com/saschasalles/LabPlatformAPI/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   base URL of the account service (e.g., "http://127.0.0.1:8080")
//	-i int      per-request timeout, seconds
//
// os.Args is filtered to only the recognized flags first, so the -c/-config
// flags consumed by the JSON layer pass through untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "s", config.ServerEndpointAddr, "account service base URL")
	timeoutSeconds := fs.Int("i", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*timeoutSeconds) * time.Second
}
