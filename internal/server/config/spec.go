package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	RESP  RESPConfig  `koanf:"resp"`
	Admin AdminConfig `koanf:"admin"`
}

// RESPConfig configures the RESP protocol server.
type RESPConfig struct {
	Addr string `koanf:"addr"`
	// MaxClients caps concurrent connections (0 = unlimited).
	MaxClients   int           `koanf:"max_clients"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// RateLimit is commands per second per connection (0 = unlimited).
	RateLimit   int `koanf:"rate_limit"`
	MaxBulkLen  int `koanf:"max_bulk_len"`
	MaxArrayLen int `koanf:"max_array_len"`
}

// AdminConfig configures the HTTP admin endpoint (/healthz, /metrics).
type AdminConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StorageSection configures the in-memory store.
type StorageSection struct {
	ShardCount int `koanf:"shard_count"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string      `koanf:"level"`
	Format string      `koanf:"format"`
	File   LogFileSpec `koanf:"file"`
}

// LogFileSpec configures rotated file output. An empty Path logs to stderr.
type LogFileSpec struct {
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}
