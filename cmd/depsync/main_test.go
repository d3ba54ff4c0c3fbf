package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/indaco/depsync/internal/manifest"
	"github.com/indaco/depsync/internal/printer"
	"github.com/indaco/depsync/internal/testutils"
	urfavecli "github.com/urfave/cli/v3"
)

func TestExitCode(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	malformed := &manifest.MalformedManifestError{Path: "source/a/package.json", Err: errors.New("bad")}

	tests := []struct {
		name       string
		err        error
		want       int
		wantOutput string
	}{
		{name: "success", err: nil, want: 0},
		{name: "violations", err: urfavecli.Exit("", 1), want: 1},
		{name: "exit with message", err: urfavecli.Exit("boom", 3), want: 3, wantOutput: "boom"},
		{name: "fatal", err: errors.New("disk gone"), want: 2, wantOutput: "Error: disk gone"},
		{name: "fatal with suggestion", err: fmt.Errorf("check failed: %w", malformed), want: 2, wantOutput: "Fix the file or exclude its directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int
			output, err := testutils.CaptureStdout(func() {
				got = exitCode(tt.err)
			})
			if err != nil {
				t.Fatalf("failed to capture stdout: %v", err)
			}
			if got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
			if !strings.Contains(output, tt.wantOutput) {
				t.Errorf("output = %q, want it to contain %q", output, tt.wantOutput)
			}
		})
	}
}

func TestRunCLI_ExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
		want  int
	}{
		{
			name: "consistent workspace",
			files: map[string]string{
				"source/a/package.json": `{"name": "@acme/a", "version": "1.0.0"}`,
				"source/b/package.json": `{"name": "@acme/b", "version": "1.0.0", "dependencies": {"@acme/a": "1.0.0"}}`,
				".depsync.yaml":         "roots: [source]\nnamespace:\n  prefixes: [\"@acme/\"]\n",
			},
			args: []string{"depsync", "--no-color", "check"},
			want: 0,
		},
		{
			name: "mismatch",
			files: map[string]string{
				"source/a/package.json": `{"name": "@acme/a", "version": "1.0.0"}`,
				"source/b/package.json": `{"name": "@acme/b", "version": "1.0.0", "dependencies": {"@acme/a": "0.1.0"}}`,
				".depsync.yaml":         "roots: [source]\nnamespace:\n  prefixes: [\"@acme/\"]\n",
			},
			args: []string{"depsync", "--no-color", "check"},
			want: 1,
		},
		{
			name: "malformed manifest",
			files: map[string]string{
				"source/a/package.json": `{"name": `,
				".depsync.yaml":         "roots: [source]\nnamespace:\n  prefixes: [\"@acme/\"]\n",
			},
			args: []string{"depsync", "--no-color", "check"},
			want: 2,
		},
		{
			name: "invalid configuration",
			files: map[string]string{
				".depsync.yaml": "roots: [source]\nbogus: 1\n",
			},
			args: []string{"depsync", "--no-color", "check"},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutils.WriteFiles(t, dir, tt.files)
			t.Chdir(dir)

			var got int
			_, _ = testutils.CaptureStdout(func() {
				got = exitCode(runCLI(tt.args))
			})
			if got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}
