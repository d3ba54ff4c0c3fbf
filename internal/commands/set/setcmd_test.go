package set

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/printer"
	"github.com/indaco/depsync/internal/testutils"
	"github.com/urfave/cli/v3"
)

var workspaceFiles = map[string]string{
	"source/a/package.json": `{
  "name": "@airswap/a",
  "version": "1.0.0"
}
`,
	"source/b/package.json": `{
  "name": "@airswap/b",
  "version": "2.0.0",
  "dependencies": {
    "@airswap/a": "0.9.0",
    "ethers": "^5.7.2"
  }
}
`,
	"source/legacy/package.json": `{
  "name": "@airswap/legacy",
  "version": "0.1.0",
  "dependencies": {
    "@airswap/a": "0.5.0"
  }
}
`,
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Roots:     []string{filepath.Join(dir, "source")},
		Manifests: []string{"package.json"},
		Namespace: config.NamespaceConfig{Prefixes: []string{"@airswap/"}},
	}
}

type packageJSON struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

func readPackage(t *testing.T, dir, rel string) packageJSON {
	t.Helper()
	var p packageJSON
	if err := json.Unmarshal([]byte(testutils.ReadFile(t, dir, rel)), &p); err != nil {
		t.Fatalf("failed to parse %s: %v", rel, err)
	}
	return p
}

func runSet(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(testConfig(dir))})
	var runErr error
	output, err := testutils.CaptureStdout(func() {
		runErr = testutils.RunCLITestAllowError(t, appCli, append([]string{"depsync", "set"}, args...), dir)
	})
	if err != nil {
		t.Fatalf("Failed to capture stdout: %v", err)
	}
	return output, runErr
}

func TestRun_ReturnsCommand(t *testing.T) {
	cmd := Run(nil)
	if cmd.Name != "set" {
		t.Errorf("Name = %q, want %q", cmd.Name, "set")
	}
	if len(cmd.Flags) != 1 || cmd.Flags[0].Names()[0] != "exclude" {
		t.Error("expected an exclude flag")
	}
}

func TestSetCmd_ExplicitVersionWithExclude(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, workspaceFiles)

	output, err := runSet(t, dir, "--exclude", "legacy", "3.0.0")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	a := readPackage(t, dir, "source/a/package.json")
	b := readPackage(t, dir, "source/b/package.json")
	if a.Version != "3.0.0" || b.Version != "3.0.0" {
		t.Errorf("versions = %s, %s; want 3.0.0", a.Version, b.Version)
	}
	if b.Dependencies["@airswap/a"] != "3.0.0" {
		t.Errorf("b depends on @airswap/a@%s, want 3.0.0", b.Dependencies["@airswap/a"])
	}
	if b.Dependencies["ethers"] != "^5.7.2" {
		t.Error("external dependency was rewritten")
	}

	if got := testutils.ReadFile(t, dir, "source/legacy/package.json"); got != workspaceFiles["source/legacy/package.json"] {
		t.Error("excluded package was modified")
	}

	for _, want := range []string{"Set 2 package(s) to 3.0.0", "Skipped: @airswap/legacy"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestSetCmd_BumpLabel(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, workspaceFiles)

	if _, err := runSet(t, dir, "minor"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	for _, rel := range []string{"source/a/package.json", "source/b/package.json", "source/legacy/package.json"} {
		if p := readPackage(t, dir, rel); p.Version != "2.1.0" {
			t.Errorf("%s version = %s, want 2.1.0", rel, p.Version)
		}
	}
}

func TestSetCmd_AlreadyAtVersion(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"source/a/package.json": `{"name": "@airswap/a", "version": "1.0.0"}`,
	})

	output, err := runSet(t, dir, "1.0.0")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(output, "All internal packages already use 1.0.0") {
		t.Errorf("output = %q", output)
	}
}

func TestSetCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing argument", nil, "missing version argument"},
		{"invalid version", []string{"not-a-version"}, "invalid version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutils.WriteFiles(t, dir, workspaceFiles)

			_, err := runSet(t, dir, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
			if got := testutils.ReadFile(t, dir, "source/a/package.json"); got != workspaceFiles["source/a/package.json"] {
				t.Error("manifest modified despite the error")
			}
		})
	}
}
