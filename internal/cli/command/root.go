package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/pkg/client"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "respkv-cli",
		Usage:   "respkv command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DeleteCommand(),
			FlushCommand(),
			MGetCommand(),
			MSetCommand(),
			DoCommand(),
			BenchCommand(),
			HealthCommand(),
			REPLCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
		Action: replAction,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "respkv server address",
			EnvVars: []string{"RESPKV_CLI_SERVER"},
			Value:   "127.0.0.1:31338",
		},
		&cli.StringFlag{
			Name:    "admin",
			Usage:   "respkv admin HTTP address",
			EnvVars: []string{"RESPKV_CLI_ADMIN"},
			Value:   "127.0.0.1:31339",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: raw, json, yaml",
			Value:   string(output.FormatRaw),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Per-request timeout",
			Value:   10 * time.Second,
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server  string
	Admin   string
	Output  output.Format
	Timeout time.Duration
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:  c.String("server"),
		Admin:   c.String("admin"),
		Output:  output.Format(c.String("output")),
		Timeout: c.Duration("timeout"),
	}
}

// Connect dials the server named by the global flags.
func Connect(c *cli.Context) (*client.Client, error) {
	flags := ParseGlobalFlags(c)

	cl, err := client.Dial(c.Context, flags.Server,
		client.WithDialTimeout(flags.Timeout),
		client.WithTimeout(flags.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return cl, nil
}

// Print writes data to the app writer in the selected format.
func Print(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	return output.NewFormatter(flags.Output).Format(writer(c), data)
}

// PrintError prints an error message to stderr.
func PrintError(c *cli.Context, format string, args ...any) {
	w := io.Writer(os.Stderr)
	if c != nil && c.App != nil && c.App.ErrWriter != nil {
		w = c.App.ErrWriter
	}
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}

func writer(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func requestContext(c *cli.Context) (context.Context, context.CancelFunc) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if d := c.Duration("timeout"); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
