package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_FirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf})

	// A second Init must not rebuild the singleton or change its output.
	var other bytes.Buffer
	Init(Options{Level: "error", Output: &other})

	l := Get()
	l.Debug().Msg("first writer keeps the logs")

	if !strings.Contains(buf.String(), "first writer keeps the logs") {
		t.Fatalf("expected log in first writer, got %q", buf.String())
	}
	if other.Len() != 0 {
		t.Fatalf("second Init took effect: %q", other.String())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Get to panic before Init")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
