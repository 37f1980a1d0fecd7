package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "respkv-server",
		Usage:   "In-memory key-value server speaking RESP",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				EnvVars: []string{"RESPKV_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "RESP listen address (overrides server.resp.addr)",
			},
			&cli.StringFlag{
				Name:  "admin-addr",
				Usage: "Admin HTTP listen address; enables the admin endpoint",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Action: run,
	}
}

// flagOverrides maps set flags to configuration keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := map[string]any{}
	if c.IsSet("addr") {
		overrides["server.resp.addr"] = c.String("addr")
	}
	if c.IsSet("admin-addr") {
		overrides["server.admin.addr"] = c.String("admin-addr")
		overrides["server.admin.enabled"] = true
	}
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}
	return overrides
}
