package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/testutils"
)

/* ------------------------------------------------------------------------- */
/* LOAD CONFIG                                                               */
/* ------------------------------------------------------------------------- */

func TestLoadConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		runInDir(t, tmpDir, func() {
			cfg, err := LoadConfigFn("")
			checkError(t, err, false)
			assertStrings(t, "Roots", cfg.Roots, []string{"source", "tools"})
			assertStrings(t, "Manifests", cfg.Manifests, []string{"package.json"})
			if cfg.File != "" {
				t.Errorf("File = %q, want empty for defaults", cfg.File)
			}
			if cfg.MaxDepth == nil || *cfg.MaxDepth != core.MaxDiscoveryDepth {
				t.Errorf("MaxDepth = %v, want %d", cfg.MaxDepth, core.MaxDiscoveryDepth)
			}
		})
	})

	t.Run("full yaml file", func(t *testing.T) {
		content := `roots: [packages, libs]
manifests: [package.json, Chart.yaml]
exclude: ["examples"]
max-depth: 4
namespace:
  keywords: [airswap]
  prefixes: ["@airswap/"]
  exclude: ["@airswap/jsonrpc-client-websocket"]
policy:
  fail-on-missing: true
`
		path := testutils.WriteTempConfig(t, content)
		cfg, err := LoadConfigFn(path)
		checkError(t, err, false)

		assertStrings(t, "Roots", cfg.Roots, []string{"packages", "libs"})
		assertStrings(t, "Manifests", cfg.Manifests, []string{"package.json", "Chart.yaml"})
		assertStrings(t, "Exclude", cfg.Exclude, []string{"examples"})
		assertStrings(t, "Keywords", cfg.Namespace.Keywords, []string{"airswap"})
		assertStrings(t, "Prefixes", cfg.Namespace.Prefixes, []string{"@airswap/"})
		if *cfg.MaxDepth != 4 {
			t.Errorf("MaxDepth = %d, want 4", *cfg.MaxDepth)
		}
		if !cfg.Policy.FailOnMissing {
			t.Error("FailOnMissing = false, want true")
		}
		if cfg.File != path {
			t.Errorf("File = %q, want %q", cfg.File, path)
		}
	})

	t.Run("empty file uses defaults", func(t *testing.T) {
		path := testutils.WriteTempConfig(t, "")
		cfg, err := LoadConfigFn(path)
		checkError(t, err, false)
		assertStrings(t, "Roots", cfg.Roots, DefaultRoots())
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := testutils.WriteTempConfig(t, "roots: [source]\npath: .version\n")
		_, err := LoadConfigFn(path)
		checkError(t, err, true)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := testutils.WriteTempConfig(t, "roots: [source\n")
		_, err := LoadConfigFn(path)
		checkError(t, err, true)
	})

	t.Run("config path from env", func(t *testing.T) {
		path := testutils.WriteTempConfig(t, "roots: [from-env]\n")
		t.Setenv(EnvConfig, path)

		cfg, err := LoadConfigFn("")
		checkError(t, err, false)
		assertStrings(t, "Roots", cfg.Roots, []string{"from-env"})
	})

	t.Run("roots from env override file", func(t *testing.T) {
		path := testutils.WriteTempConfig(t, "roots: [source]\n")
		t.Setenv(EnvRoots, strings.Join([]string{"/abs/one", "two"}, string(filepath.ListSeparator)))

		cfg, err := LoadConfigFn(path)
		checkError(t, err, false)
		assertStrings(t, "Roots", cfg.Roots, []string{"/abs/one", "two"})
	})

	t.Run("roots from env with path traversal rejected", func(t *testing.T) {
		t.Setenv(EnvRoots, "../../etc")
		tmpDir := t.TempDir()
		runInDir(t, tmpDir, func() {
			_, err := LoadConfigFn("")
			checkError(t, err, true)
			if !strings.Contains(err.Error(), "path traversal not allowed") {
				t.Errorf("unexpected error message: %v", err)
			}
		})
	})
}

func TestConfig_RootPaths(t *testing.T) {
	cfg := &Config{Roots: []string{"source", "/abs/tools", "./nested/../libs"}, File: "/repo/.depsync.yaml"}
	assertStrings(t, "RootPaths", cfg.RootPaths(), []string{"/repo/source", "/abs/tools", "/repo/libs"})

	cfg.File = ""
	assertStrings(t, "RootPaths", cfg.RootPaths(), []string{"source", "/abs/tools", "libs"})
}

func TestConfig_DiscoveryOptions(t *testing.T) {
	depth := 3
	cfg := &Config{Manifests: []string{"Cargo.toml"}, Exclude: []string{"fixtures"}, MaxDepth: &depth}
	opts := cfg.DiscoveryOptions()

	assertStrings(t, "Filenames", opts.Filenames, []string{"Cargo.toml"})
	assertStrings(t, "Exclude", opts.Exclude, []string{"fixtures"})
	if opts.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", opts.MaxDepth)
	}
}

func TestConfig_InternalNamespace(t *testing.T) {
	cfg := &Config{Namespace: NamespaceConfig{Keywords: []string{"airswap"}, Exclude: []string{"airswap-old"}}}
	ns := cfg.InternalNamespace()

	if !ns.Matches("@airswap/swap") {
		t.Error("expected @airswap/swap to match")
	}
	if ns.Matches("airswap-old") {
		t.Error("excluded name should not match")
	}
}

func TestConfig_NewStore(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/repo/source/swap/package.json", []byte(`{"name": "@airswap/swap", "version": "4.1.0"}`))
	fs.SetFile("/repo/source/swap/Cargo.toml", []byte("[package]\nname = \"swap\"\nversion = \"0.1.0\"\n"))

	cfg := &Config{Roots: []string{"source"}, Manifests: []string{"package.json"}, File: "/repo/.depsync.yaml"}
	handles, err := cfg.NewStore(fs).Discover(context.Background(), cfg.RootPaths())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(handles) != 1 || handles[0].Path != "/repo/source/swap/package.json" {
		t.Errorf("handles = %+v, want only the package.json", handles)
	}
}
