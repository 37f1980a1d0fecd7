package repl

import (
	"sort"
	"strings"
)

// Builtins are handled by the REPL itself.
var Builtins = []string{"help", "history", "exit", "quit"}

// Completer looks up command names by prefix for the help builtin.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over server command names and the builtins.
func NewCompleter(serverCommands []string) *Completer {
	cmds := make([]string, 0, len(serverCommands)+len(Builtins))
	for _, c := range serverCommands {
		cmds = append(cmds, strings.ToUpper(c))
	}
	sort.Strings(cmds)
	cmds = append(cmds, Builtins...)
	return &Completer{commands: cmds}
}

// Complete returns the commands starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	p := strings.ToLower(prefix)
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToLower(cmd), p) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
