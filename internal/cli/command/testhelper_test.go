package command

import (
	"bytes"
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/respserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// testEnv is a running server with its admin endpoint.
type testEnv struct {
	addr  string
	admin string
	store *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	store := memory.New()
	srv := respserver.New(respserver.DefaultConfig(), store, respserver.WithLogger(logger.NewNop()))
	served := make(chan error, 1)
	go func() { served <- srv.Serve(context.Background(), ln) }()

	admin := httptest.NewServer(httpserver.NewRouter(&httpserver.RouterConfig{
		Store:  store,
		Logger: logger.NewNop(),
	}))

	t.Cleanup(func() {
		admin.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-served
	})

	return &testEnv{
		addr:  ln.Addr().String(),
		admin: strings.TrimPrefix(admin.URL, "http://"),
		store: store,
	}
}

// run executes the CLI with args against env and returns stdout and the error.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	app := App()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	full := []string{"respkv-cli", "--server", e.addr, "--admin", e.admin, "--timeout", "5s"}
	full = append(full, args...)
	err := app.Run(full)
	return out.String(), err
}
