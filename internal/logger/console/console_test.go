package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Output: &buf})

	l.Debug("hidden")
	l.Info("shown", "edges", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "edges=3") {
		t.Errorf("info output = %q", out)
	}
}

func TestConsoleLogger_DebugAndJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Debug: true, JSON: true, Output: &buf})

	l.Debug("computed", "run", "abc")

	out := buf.String()
	if !strings.Contains(out, `"msg":"computed"`) || !strings.Contains(out, `"run":"abc"`) {
		t.Errorf("json output = %q", out)
	}
}
