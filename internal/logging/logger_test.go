package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLoggerLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(&buf, false)

	logger.Debug("hidden %d", 1)
	logger.WithField("owner", "alice").WithFields(map[string]interface{}{"cmd": "DEAL"}).Warn("rejected: %s", "busy")
	logger.Info("plain")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written without debug enabled: %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], Prefix+"WARN rejected: busy cmd=DEAL owner=alice") {
		t.Fatalf("warn line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], Prefix+"INFO plain") {
		t.Fatalf("info line = %q", lines[1])
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	logger := NewStdLogger(&bytes.Buffer{}, true)
	child := logger.WithField("k", "v")
	if len(logger.Fields()) != 0 {
		t.Fatalf("parent fields mutated: %v", logger.Fields())
	}
	if child.Fields()["k"] != "v" {
		t.Fatalf("child fields = %v", child.Fields())
	}
}
