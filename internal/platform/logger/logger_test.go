package logger

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kit "refgate/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"", "info"},
		{"  nonsense  ", "info"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestSink_FileAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refgate.log")
	w := sink(Options{FilePath: path})
	f, ok := w.(*os.File)
	if !ok {
		t.Fatalf("expected *os.File sink, got %T", w)
	}
	defer f.Close()
	if _, err := f.WriteString("one\n"); err != nil {
		t.Fatalf("write: %v", err)
	}

	// a second open of the same path must append, not truncate
	w2 := sink(Options{FilePath: path})
	f2 := w2.(*os.File)
	defer f2.Close()
	if _, err := f2.WriteString("two\n"); err != nil {
		t.Fatalf("append write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	kit.MustContain(t, string(b), "one")
	kit.MustContain(t, string(b), "two")
}

func TestSink_UnopenableDegradesToDiscard(t *testing.T) {
	// a directory path cannot be opened as a file
	w := sink(Options{FilePath: t.TempDir()})
	if w != io.Discard {
		t.Fatalf("expected io.Discard for unopenable path, got %T", w)
	}
}

func TestSink_ExplicitWriterWins(t *testing.T) {
	var buf bytes.Buffer
	if w := sink(Options{Writer: &buf, FilePath: "/nope"}); w != &buf {
		t.Fatalf("explicit writer should take precedence")
	}
}

func TestInit_Named_C(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "console", Component: "gate", Writer: &buf})

	Get().Info().Str("k", "v").Msg("root-msg")
	Named("resolver").Info().Msg("named-msg")

	ctx := WithCorrelation(context.Background(), "cid-123")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Info().Msg("ctx-empty")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "resolver")
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "correlation_id=")
	kit.MustContain(t, out, "cid-123")
	kit.MustContain(t, out, "component=")
}

func TestCorrelationFrom(t *testing.T) {
	if got := CorrelationFrom(context.Background()); got != "" {
		t.Fatalf("empty ctx should yield empty id, got %q", got)
	}
	ctx := WithCorrelation(context.Background(), "abc")
	if got := CorrelationFrom(ctx); got != "abc" {
		t.Fatalf("CorrelationFrom = %q, want abc", got)
	}
	// empty id is a no-op
	if ctx2 := WithCorrelation(context.Background(), ""); CorrelationFrom(ctx2) != "" {
		t.Fatalf("empty id must not be stored")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("REFGATE_LOG_LEVEL", "warn")
	t.Setenv("REFGATE_LOG_FORMAT", "json")
	t.Setenv("REFGATE_LOG_FILE", "/var/log/refgate.log")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.FilePath != "/var/log/refgate.log" {
		t.Fatalf("FromEnv mismatch: %+v", opt)
	}
}
