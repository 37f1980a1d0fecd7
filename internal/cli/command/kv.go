package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/resp"
)

// errReply makes the process exit non-zero after an error reply was printed.
var errReply = cli.Exit("", 1)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return serverCommand("get", "GET", "KEY", "Get the value of a key")
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return serverCommand("set", "SET", "KEY VALUE", "Set a key to a value")
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	cmd := serverCommand("delete", "DELETE", "KEY", "Delete a key")
	cmd.Aliases = []string{"del"}
	return cmd
}

// FlushCommand returns the flush command.
func FlushCommand() *cli.Command {
	return serverCommand("flush", "FLUSH", "", "Remove all keys")
}

// MGetCommand returns the mget command.
func MGetCommand() *cli.Command {
	return serverCommand("mget", "MGET", "KEY [KEY...]", "Get the values of several keys")
}

// MSetCommand returns the mset command.
func MSetCommand() *cli.Command {
	return serverCommand("mset", "MSET", "KEY VALUE [KEY VALUE...]", "Set several keys")
}

// DoCommand returns the do command, which sends its arguments unchanged.
func DoCommand() *cli.Command {
	return &cli.Command{
		Name:      "do",
		Usage:     "Send a raw command",
		ArgsUsage: "COMMAND [ARG...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("do: missing command")
			}
			return run(c, c.Args().Slice())
		},
	}
}

// serverCommand builds a command that sends name followed by its arguments.
// Argument validation is left to the server so errors match what it reports.
func serverCommand(use, name, argsUsage, usage string) *cli.Command {
	return &cli.Command{
		Name:      use,
		Usage:     usage,
		ArgsUsage: argsUsage,
		Action: func(c *cli.Context) error {
			return run(c, append([]string{name}, c.Args().Slice()...))
		},
	}
}

func run(c *cli.Context, args []string) error {
	cl, err := Connect(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	ctx, cancel := requestContext(c)
	defer cancel()

	v, err := cl.DoStrings(ctx, args...)
	if err != nil {
		return err
	}
	if err := Print(c, v); err != nil {
		return err
	}
	if _, ok := v.(resp.Error); ok {
		return errReply
	}
	return nil
}
