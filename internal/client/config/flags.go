package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ozo/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the identity API
//	-i int      online check interval in seconds
//	-s string   credential store driver (sqlite, memory, redis)
//	-d string   credential store path (sqlite file)
//
// os.Args is filtered with flagx.FilterArgs first so that flags owned by
// other components do not make parsing fail.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-s", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the identity API")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "credential store driver: sqlite, memory or redis")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "credential store file (sqlite driver)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
