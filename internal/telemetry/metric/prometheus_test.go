package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.CommandsTotal == nil {
		t.Error("CommandsTotal is nil")
	}
	if r.CommandDuration == nil {
		t.Error("CommandDuration is nil")
	}
}

func TestHandler(t *testing.T) {
	h := NewRegistry().Handler()
	if h == nil {
		t.Fatal("Handler() returned nil")
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	bodyStr := rec.Body.String()
	if !strings.Contains(bodyStr, "go_goroutines") {
		t.Error("expected go_goroutines metric")
	}
	if !strings.Contains(bodyStr, "process_") {
		t.Error("expected process metrics")
	}
}

func TestConnectionMetrics(t *testing.T) {
	r := NewRegistry()

	r.ConnOpened()
	r.ConnOpened()
	r.ConnOpened()
	r.ConnClosed()

	bodyStr := scrape(t, r)
	if !strings.Contains(bodyStr, "respkv_connections_total 3") {
		t.Error("expected respkv_connections_total 3")
	}
	if !strings.Contains(bodyStr, "respkv_connections_active 2") {
		t.Error("expected respkv_connections_active 2")
	}
}

func TestCommandMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordCommand("GET", "ok", time.Millisecond)
	r.RecordCommand("GET", "ok", 2*time.Millisecond)
	r.RecordCommand("SET", "error", time.Microsecond)
	r.IncDecodeError()

	bodyStr := scrape(t, r)
	if !strings.Contains(bodyStr, `respkv_commands_total{command="GET",result="ok"} 2`) {
		t.Error(`expected respkv_commands_total{command="GET",result="ok"} 2`)
	}
	if !strings.Contains(bodyStr, `respkv_commands_total{command="SET",result="error"} 1`) {
		t.Error(`expected respkv_commands_total{command="SET",result="error"} 1`)
	}
	if !strings.Contains(bodyStr, `respkv_command_duration_seconds_count{command="GET"} 2`) {
		t.Error("expected respkv_command_duration_seconds_count for GET")
	}
	if !strings.Contains(bodyStr, "respkv_decode_errors_total 1") {
		t.Error("expected respkv_decode_errors_total 1")
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry

	// None of these may panic.
	r.ConnOpened()
	r.ConnClosed()
	r.RecordCommand("GET", "ok", time.Second)
	r.IncDecodeError()
}

type fixedSizer int

func (f fixedSizer) Len() int { return int(f) }

func TestCollector(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewCollector(fixedSizer(42))); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if bodyStr := scrape(t, r); !strings.Contains(bodyStr, "respkv_keys 42") {
		t.Error("expected respkv_keys 42")
	}
}
