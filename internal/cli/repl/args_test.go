package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "SET k v", []string{"SET", "k", "v"}},
		{"extra spaces", "  GET \t k  ", []string{"GET", "k"}},
		{"empty", "   ", nil},
		{"double quoted", `SET k "a b"`, []string{"SET", "k", "a b"}},
		{"escapes", `SET k "a\nb\t\"c\"\\"`, []string{"SET", "k", "a\nb\t\"c\"\\"}},
		{"hex escape", `SET k "\x00\xff"`, []string{"SET", "k", "\x00\xff"}},
		{"single quoted", `SET k 'a "b" \'c\''`, []string{"SET", "k", `a "b" 'c'`}},
		{"empty quoted", `SET k ""`, []string{"SET", "k", ""}},
		{"joined", `SET k"x" v`, []string{"SET", "kx", "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			require.NoError(t, err)
			var strs []string
			for _, a := range got {
				strs = append(strs, string(a))
			}
			assert.Equal(t, tt.want, strs)
		})
	}
}

func TestSplitArgs_Errors(t *testing.T) {
	for _, line := range []string{
		`SET k "open`,
		`SET k 'open`,
		`SET k "a"b`,
		`SET k 'a'b`,
	} {
		t.Run(line, func(t *testing.T) {
			_, err := SplitArgs(line)
			assert.ErrorIs(t, err, errUnbalancedQuotes)
		})
	}
}
