package initialize

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/printer"
	"github.com/indaco/depsync/internal/testutils"
	"github.com/urfave/cli/v3"
)

func stubInteractive(t *testing.T, interactive bool) {
	t.Helper()
	original := isInteractive
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() { isInteractive = original })
}

func TestCLI_InitCommand(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })
	stubInteractive(t, false)

	dir := t.TempDir()
	testutils.WriteFiles(t, dir, initWorkspace)

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	_, _ = testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"depsync", "init"}, dir)
	})

	cfg := loadWritten(t, filepath.Join(dir, config.DefaultConfigFile))
	if want := []string{"@airswap/", "swap-"}; !reflect.DeepEqual(cfg.Namespace.Prefixes, want) {
		t.Errorf("Prefixes = %v, want %v", cfg.Namespace.Prefixes, want)
	}
	if want := []string{"source", "tools"}; !reflect.DeepEqual(cfg.Roots, want) {
		t.Errorf("Roots = %v, want %v", cfg.Roots, want)
	}
}

func TestCLI_InitCommand_Keywords(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })
	stubInteractive(t, true)

	dir := t.TempDir()
	testutils.WriteFiles(t, dir, initWorkspace)

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	_, _ = testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"depsync", "init", "--no-interactive", "-k", "airswap", "-k", "swap"}, dir)
	})

	cfg := loadWritten(t, filepath.Join(dir, config.DefaultConfigFile))
	if want := []string{"airswap", "swap"}; !reflect.DeepEqual(cfg.Namespace.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", cfg.Namespace.Keywords, want)
	}
}

func TestCLI_InitCommand_ExistingWithoutForce(t *testing.T) {
	stubInteractive(t, false)

	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultConfigFile)
	if err := os.WriteFile(path, []byte("roots: [source]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	err := testutils.RunCLITestAllowError(t, appCli, []string{"depsync", "init"}, dir)
	if err == nil {
		t.Fatal("expected error for an existing config without --force")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "roots: [source]\n" {
		t.Error("existing config was modified")
	}
}

func TestCLI_InitCommand_Force(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })
	stubInteractive(t, false)

	dir := t.TempDir()
	testutils.WriteFiles(t, dir, initWorkspace)
	path := filepath.Join(dir, config.DefaultConfigFile)
	if err := os.WriteFile(path, []byte("roots: [source]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	_, _ = testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"depsync", "init", "--force"}, dir)
	})

	cfg := loadWritten(t, path)
	if len(cfg.Namespace.Prefixes) == 0 {
		t.Error("expected inferred prefixes after --force")
	}
}

func TestCLI_InitCommand_UnknownTheme(t *testing.T) {
	stubInteractive(t, false)
	dir := t.TempDir()

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(config.Default())})
	err := testutils.RunCLITestAllowError(t, appCli, []string{"depsync", "init", "--theme", "neon"}, dir)
	if err == nil {
		t.Fatal("expected error for an unknown theme")
	}
	if _, statErr := os.Stat(filepath.Join(dir, config.DefaultConfigFile)); statErr == nil {
		t.Error("config should not be written when the theme is invalid")
	}
}
