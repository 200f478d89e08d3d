package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionVariables(t *testing.T) {
	// Verify default values are set
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	app := NewApp(WithIO(nil, &stdout, nil))

	app.root.SetArgs([]string{"version"})
	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := stdout.String()
	if !strings.HasPrefix(out, "cloudglue ") {
		t.Errorf("output %q should start with %q", out, "cloudglue ")
	}
	if !strings.Contains(out, "go version:") {
		t.Errorf("output %q should report the Go version", out)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	var stdout bytes.Buffer
	app := NewApp(WithIO(nil, &stdout, nil))

	app.root.SetArgs([]string{"version", "--json"})
	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, `"version":"`+Version+`"`) {
		t.Errorf("JSON output %q missing version field", out)
	}
}
