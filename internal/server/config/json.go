package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/alumnet/internal/flagx"
	"github.com/dmitrijs2005/alumnet/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations accept
// both "10m" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity"`
	RedisURL              string         `json:"redis_url"`
	OTPValidityDuration   timex.Duration `json:"otp_validity"`
	OTPMaxAttempts        int            `json:"otp_max_attempts"`
	LogLevel              string         `json:"log_level"`
}

// parseJson loads configuration values from the file named by the -c or
// -config flag. Keys absent from the file keep their current values.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RedisURL != "" {
		config.RedisURL = c.RedisURL
	}
	if c.OTPValidityDuration.Duration > 0 {
		config.OTPValidityDuration = c.OTPValidityDuration.Duration
	}
	if c.OTPMaxAttempts > 0 {
		config.OTPMaxAttempts = c.OTPMaxAttempts
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
