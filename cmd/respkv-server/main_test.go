package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

func parseFlags(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	app := newApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestFlagOverrides(t *testing.T) {
	assert.Empty(t, flagOverrides(parseFlags(t)))

	got := flagOverrides(parseFlags(t, "--addr", ":7000", "--admin-addr", ":7001", "--log-level", "debug"))
	assert.Equal(t, map[string]any{
		"server.resp.addr":     ":7000",
		"server.admin.addr":    ":7001",
		"server.admin.enabled": true,
		"log.level":            "debug",
	}, got)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  resp:
    addr: 127.0.0.1:7000
    max_clients: 8
    idle_timeout: 30s
log:
  level: warn
`)

	cfg, err := loadConfig(path, map[string]any{"server.resp.addr": "127.0.0.1:7100"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7100", cfg.Server.RESP.Addr)
	assert.Equal(t, 8, cfg.Server.RESP.MaxClients)
	assert.Equal(t, "warn", cfg.Log.Level)

	rc := respConfig(cfg)
	assert.Equal(t, "127.0.0.1:7100", rc.Addr)
	assert.Equal(t, 8, rc.MaxClients)
	assert.Equal(t, cfg.Server.RESP.IdleTimeout, rc.IdleTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := loadConfig("", map[string]any{"storage.shard_count": 3})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestApplyReload(t *testing.T) {
	defer logger.SetLevel("info")
	logger.SetLevel("info")

	path := writeConfig(t, "log:\n  level: debug\n")
	applyReload(path, nil, logger.NewNop())
	assert.Equal(t, "debug", logger.GetLevel())

	// Flag overrides keep precedence over the file.
	applyReload(path, map[string]any{"log.level": "error"}, logger.NewNop())
	assert.Equal(t, "error", logger.GetLevel())

	// An invalid file leaves the level unchanged.
	bad := writeConfig(t, "log:\n  level: loud\n")
	applyReload(bad, nil, logger.NewNop())
	assert.Equal(t, "error", logger.GetLevel())
}
