package config

import "time"

// Config holds runtime settings for the alumnet client.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	StoragePath    string
	LogLevel       string

	// PingInterval is how often the client probes API reachability.
	PingInterval time.Duration
}

// LoadDefaults populates c with defaults that talk to a locally running API.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.StoragePath = "alumnet.db"
	c.LogLevel = "info"
	c.PingInterval = 15 * time.Second
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
