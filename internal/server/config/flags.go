package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-r string   Redis URL
//	-o int      verification code validity, minutes
//	-m int      wrong verification attempts allowed
//	-l string   log level
//
// Duration flags are integers in minutes. Flags of other components (-c) are
// filtered out before parsing. Panics on bad values.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	otpValidity := fs.Int("o", int(config.OTPValidityDuration.Minutes()), "verification code validity (in minutes)")
	fs.IntVar(&config.OTPMaxAttempts, "m", config.OTPMaxAttempts, "wrong verification attempts allowed")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := flagx.ParseOwn(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.OTPValidityDuration = time.Duration(*otpValidity) * time.Minute
}
