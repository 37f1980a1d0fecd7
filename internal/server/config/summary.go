package config

// Summary returns the settings worth logging at startup as key-value pairs.
func Summary(cfg *ServerConfig) []any {
	fields := []any{
		"resp_addr", cfg.Server.RESP.Addr,
		"max_clients", cfg.Server.RESP.MaxClients,
		"idle_timeout", cfg.Server.RESP.IdleTimeout.String(),
		"rate_limit", cfg.Server.RESP.RateLimit,
		"shard_count", cfg.Storage.ShardCount,
		"log_level", cfg.Log.Level,
	}
	if cfg.Server.Admin.Enabled {
		fields = append(fields, "admin_addr", cfg.Server.Admin.Addr)
	}
	if cfg.Log.File.Path != "" {
		fields = append(fields, "log_file", cfg.Log.File.Path)
	}
	return fields
}
