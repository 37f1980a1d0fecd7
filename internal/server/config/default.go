package config

import (
	"github.com/yndnr/respkv/internal/resp"
	"github.com/yndnr/respkv/pkg/cmap"
)

// Default configuration values.
const (
	DefaultRESPAddr   = "127.0.0.1:31338"
	DefaultAdminAddr  = "127.0.0.1:31339"
	DefaultMaxClients = 64

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			RESP: RESPConfig{
				Addr:        DefaultRESPAddr,
				MaxClients:  DefaultMaxClients,
				MaxBulkLen:  resp.DefaultMaxBulkLen,
				MaxArrayLen: resp.DefaultMaxArrayLen,
			},
			Admin: AdminConfig{
				Enabled: false,
				Addr:    DefaultAdminAddr,
			},
		},
		Storage: StorageSection{
			ShardCount: cmap.DefaultShardCount,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File: LogFileSpec{
				MaxSizeMB:  DefaultLogMaxSizeMB,
				MaxBackups: DefaultLogMaxBackups,
				MaxAgeDays: DefaultLogMaxAgeDays,
			},
		},
	}
}
