package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/resp"
)

// Executor runs one command against a server.
type Executor interface {
	Do(ctx context.Context, args ...[]byte) (resp.Value, error)
}

// Config configures a REPL. Zero fields take defaults.
type Config struct {
	In        io.Reader
	Out       io.Writer
	Prompt    string
	Formatter output.Formatter
	History   *History
	Completer *Completer
	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	exec      Executor
	input     io.Reader
	output    io.Writer
	prompt    string
	formatter output.Formatter
	completer *Completer
	history   *History
	timeout   time.Duration
}

// New creates a new REPL instance.
func New(exec Executor, cfg Config) *REPL {
	r := &REPL{
		exec:      exec,
		input:     cfg.In,
		output:    cfg.Out,
		prompt:    cfg.Prompt,
		formatter: cfg.Formatter,
		completer: cfg.Completer,
		history:   cfg.History,
		timeout:   cfg.Timeout,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.prompt == "" {
		r.prompt = "respkv> "
	}
	if r.formatter == nil {
		r.formatter = &output.RawFormatter{}
	}
	if r.completer == nil {
		r.completer = NewCompleter(nil)
	}
	if r.history == nil {
		r.history = NewHistory("")
	}
	return r
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input,
// and the transport error when the connection fails.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.input)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				fmt.Fprintln(r.output)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		quit, err := r.execute(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// execute runs one line and reports whether the REPL should stop.
func (r *REPL) execute(ctx context.Context, line string) (bool, error) {
	args, err := SplitArgs(line)
	if err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
		return false, nil
	}
	if len(args) == 0 {
		return false, nil
	}

	switch strings.ToLower(string(args[0])) {
	case "exit", "quit":
		return true, nil
	case "help":
		prefix := ""
		if len(args) > 1 {
			prefix = string(args[1])
		}
		for _, c := range r.completer.Complete(prefix) {
			fmt.Fprintln(r.output, c)
		}
		return false, nil
	case "history":
		for i, e := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, e)
		}
		return false, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	v, err := r.exec.Do(ctx, args...)
	if err != nil {
		return false, err
	}
	if err := r.formatter.Format(r.output, v); err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
	}
	return false, nil
}
