package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp(t *testing.T) {
	app := App()
	require.NotNil(t, app)

	assert.Equal(t, "respkv-cli", app.Name)
	assert.NotEmpty(t, app.Usage)
	assert.NotEmpty(t, app.Version)

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	for _, name := range []string{"get", "set", "delete", "flush", "mget", "mset", "do", "bench", "health", "repl"} {
		assert.True(t, commandNames[name], "missing command %s", name)
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	flagNames := make(map[string]bool)
	for _, flag := range App().Flags {
		flagNames[flag.Names()[0]] = true
	}
	for _, name := range []string{"server", "admin", "output", "timeout"} {
		assert.True(t, flagNames[name], "missing flag %s", name)
	}
}

func TestApp_InvalidOutput(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "--output", "table", "flush")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestKVCommands_Raw(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"get", "k"}, "(nil)\n"},
		{[]string{"set", "k", "v"}, "(integer) 1\n"},
		{[]string{"get", "k"}, "\"v\"\n"},
		{[]string{"mset", "a", "1", "b", "2"}, "(integer) 2\n"},
		{[]string{"mget", "a", "x", "b"}, "1) \"1\"\n2) (nil)\n3) \"2\"\n"},
		{[]string{"del", "a"}, "(integer) 1\n"},
		{[]string{"delete", "a"}, "(integer) 0\n"},
		{[]string{"do", "get", "b"}, "\"2\"\n"},
		{[]string{"flush"}, "(integer) 2\n"},
	}

	for _, tt := range tests {
		out, err := env.run(t, "", tt.args...)
		require.NoError(t, err, "args %v", tt.args)
		assert.Equal(t, tt.want, out, "args %v", tt.args)
	}
	assert.Equal(t, 0, env.store.Len())
}

func TestKVCommands_ErrorReplyExitsNonZero(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "get")
	require.Error(t, err)
	assert.Equal(t, "(error) ERR wrong number of arguments for 'GET'\n", out)

	out, err = env.run(t, "", "do", "nope")
	require.Error(t, err)
	assert.Equal(t, "(error) ERR unknown command 'nope'\n", out)
}

func TestKVCommands_JSON(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "mset", "a", "1")
	require.NoError(t, err)

	out, err := env.run(t, "", "-o", "json", "mget", "a", "b")
	require.NoError(t, err)
	assert.JSONEq(t, `["1", null]`, out)
}

func TestKVCommands_YAML(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "-o", "yaml", "set", "a", "1")
	require.NoError(t, err)
	assert.YAMLEq(t, "1\n", out)
}

func TestDoCommand_MissingCommand(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "do")
	assert.ErrorContains(t, err, "missing command")
}

func TestConnect_Refused(t *testing.T) {
	env := newTestEnv(t)
	env.addr = "127.0.0.1:1"
	_, err := env.run(t, "", "get", "k")
	assert.ErrorContains(t, err, "connect")
}

func TestHealthCommand(t *testing.T) {
	env := newTestEnv(t)
	env.store.Set([]byte("k"), []byte("v"))

	out, err := env.run(t, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Server is healthy")
	assert.Contains(t, out, "Keys:    1")

	out, err = env.run(t, "", "-o", "json", "health")
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 1, body["keys"])
	assert.Equal(t, env.admin, body["target"])
}

func TestBenchCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "-o", "json", "bench", "-c", "4", "-n", "200", "--keyspace", "10")
	require.NoError(t, err)

	var report BenchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 2)
	assert.Equal(t, "set", report.Results[0].Op)
	assert.Equal(t, "get", report.Results[1].Op)
	for _, r := range report.Results {
		assert.EqualValues(t, 200, r.Requests)
		assert.Zero(t, r.Errors)
		assert.Positive(t, r.OpsPerSec)
	}
	assert.Equal(t, 10, env.store.Len())
}

func TestBenchCommand_UnknownOp(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "bench", "--ops", "incr")
	assert.ErrorContains(t, err, "unknown operation")
}

func TestREPL_DefaultAction(t *testing.T) {
	env := newTestEnv(t)
	history := t.TempDir() + "/history"

	out, err := env.run(t, "SET k \"a b\"\nGET k\nexit\n", "repl", "--history-file", history)
	require.NoError(t, err)
	assert.Contains(t, out, "(integer) 1\n")
	assert.Contains(t, out, "\"a b\"\n")

	v, ok := env.store.Get([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, "a b", string(v))
}

func TestREPL_UnknownTopLevelCommand(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "nosuch")
	assert.ErrorContains(t, err, "unknown command")
}
