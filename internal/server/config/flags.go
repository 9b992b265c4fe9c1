package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/aycode/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-driver string database driver: pgx or sqlite
//	-d string     database DSN
//	-s string     HS256 secret key
//	-t duration   session token validity (e.g., "1h")
//	-rt duration  per-step request timeout
//	-bc int       bcrypt cost
//	-secure       mark the session cookie Secure
//	-l string     log level
//	-admin string email of a user to promote to admin at startup
//
// Arguments not listed above are filtered out first with flagx.FilterArgs so
// that -c/-config and foreign flags do not trip the parser.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-driver", "-d", "-s", "-t", "-rt", "-bc", "-secure", "-l", "-admin"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (pgx, sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "session token validity")
	fs.DurationVar(&config.RequestTimeout, "rt", config.RequestTimeout, "request timeout")
	fs.IntVar(&config.BcryptCost, "bc", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.CookieSecure, "secure", config.CookieSecure, "secure session cookie")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.AdminEmail, "admin", config.AdminEmail, "promote this user to admin at startup")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
