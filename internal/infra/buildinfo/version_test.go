package buildinfo

import (
	"runtime"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if info.BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}

func TestGet_GoVersionFallback(t *testing.T) {
	orig := GoVersion
	defer func() { GoVersion = orig }()

	GoVersion = ""
	if got := Get().GoVersion; got != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", got, runtime.Version())
	}

	GoVersion = "go1.0"
	if got := Get().GoVersion; got != "go1.0" {
		t.Errorf("GoVersion = %q, want go1.0", got)
	}
}

func TestString(t *testing.T) {
	origV, origC, origB := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = origV, origC, origB }()

	Version, Commit, BuildTime = "v1.2.3", "abc123", "2026-01-01"
	want := "v1.2.3 (abc123) built at 2026-01-01"
	if s := String(); s != want {
		t.Errorf("String() = %q, want %q", s, want)
	}
}

func TestFields(t *testing.T) {
	fields := Fields()
	if len(fields)%2 != 0 {
		t.Fatalf("Fields() returned odd length %d", len(fields))
	}

	keys := map[string]bool{}
	for i := 0; i < len(fields); i += 2 {
		k, ok := fields[i].(string)
		if !ok {
			t.Fatalf("key at %d is %T, want string", i, fields[i])
		}
		keys[k] = true
	}
	for _, k := range []string{"version", "commit", "build_time", "go_version"} {
		if !keys[k] {
			t.Errorf("Fields() missing %q", k)
		}
	}
}
