package repl

import (
	"testing"
)

func TestNewCompleter(t *testing.T) {
	c := NewCompleter([]string{"set", "get"})
	if c == nil {
		t.Fatal("NewCompleter returned nil")
	}
	want := []string{"GET", "SET", "help", "history", "exit", "quit"}
	if len(c.commands) != len(want) {
		t.Fatalf("commands = %v, want %v", c.commands, want)
	}
	for i := range want {
		if c.commands[i] != want[i] {
			t.Errorf("commands[%d] = %q, want %q", i, c.commands[i], want[i])
		}
	}
}

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter([]string{"GET", "SET", "DELETE", "FLUSH", "MGET", "MSET"})

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"upper prefix", "M", []string{"MGET", "MSET"}},
		{"lower prefix", "mg", []string{"MGET"}},
		{"exact", "GET", []string{"GET"}},
		{"builtin", "h", []string{"help", "history"}},
		{"exit/quit", "ex", []string{"exit"}},
		{"no match", "nonexistent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complete(tt.prefix)
			if len(got) != len(tt.want) {
				t.Fatalf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
			for i, g := range got {
				if g != tt.want[i] {
					t.Errorf("Complete(%q)[%d] = %q, want %q", tt.prefix, i, g, tt.want[i])
				}
			}
		})
	}

	if got := c.Complete(""); len(got) != len(c.commands) {
		t.Errorf("Complete(\"\") returned %d items, want %d", len(got), len(c.commands))
	}
}
