package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
)

// serverCommands are offered by REPL help.
var serverCommands = []string{"GET", "SET", "DELETE", "FLUSH", "MGET", "MSET"}

// REPLCommand returns the repl command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start interactive mode",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "History file (default ~/.respkv/history)",
			},
		},
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}

	cl, err := Connect(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	flags := ParseGlobalFlags(c)
	history := repl.NewHistory(c.String("history-file"))
	if err := history.Load(); err != nil {
		PrintError(c, "load history: %v", err)
	}
	defer func() {
		if err := history.Save(); err != nil {
			PrintError(c, "save history: %v", err)
		}
	}()

	r := repl.New(cl, repl.Config{
		In:        c.App.Reader,
		Out:       writer(c),
		Prompt:    flags.Server + "> ",
		Formatter: output.NewFormatter(flags.Output),
		History:   history,
		Completer: repl.NewCompleter(serverCommands),
		Timeout:   flags.Timeout,
	})
	return r.Run(c.Context)
}
