package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/cmap"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Verify validates the configuration and returns the first problem found.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	r := &cfg.RESP
	if err := verifyAddr("server.resp.addr", r.Addr); err != nil {
		return err
	}
	if r.MaxClients < 0 {
		return invalidf("server.resp.max_clients must not be negative")
	}
	if r.IdleTimeout < 0 || r.ReadTimeout < 0 || r.WriteTimeout < 0 {
		return invalidf("server.resp timeouts must not be negative")
	}
	if r.RateLimit < 0 {
		return invalidf("server.resp.rate_limit must not be negative")
	}
	if r.MaxBulkLen <= 0 {
		return invalidf("server.resp.max_bulk_len must be positive")
	}
	if r.MaxArrayLen <= 0 {
		return invalidf("server.resp.max_array_len must be positive")
	}

	if cfg.Admin.Enabled {
		if err := verifyAddr("server.admin.addr", cfg.Admin.Addr); err != nil {
			return err
		}
		if cfg.Admin.Addr == r.Addr {
			return invalidf("server.admin.addr and server.resp.addr are both %s", r.Addr)
		}
	}
	return nil
}

func verifyAddr(key, addr string) error {
	if addr == "" {
		return invalidf("%s is required", key)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return invalidf("%s %q: %v", key, addr, err)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if !cmap.ValidShardCount(cfg.ShardCount) {
		return invalidf("storage.shard_count must be a positive power of two, got %d", cfg.ShardCount)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return invalidf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "console", "text":
	default:
		return invalidf("log.format %q is not json or console", cfg.Format)
	}
	if cfg.File.Path != "" && cfg.File.MaxSizeMB < 0 {
		return invalidf("log.file.max_size_mb must not be negative")
	}
	return nil
}
