package config

import (
	"context"
	"strings"
	"testing"

	"github.com/indaco/depsync/internal/core"
)

func validConfig() *Config {
	cfg := Default()
	cfg.File = "/repo/.depsync.yaml"
	cfg.Namespace.Keywords = []string{"airswap"}
	return cfg
}

func repoFS() *core.MockFileSystem {
	fs := core.NewMockFileSystem()
	fs.SetFile("/repo/source/swap/package.json", []byte("{}"))
	fs.SetFile("/repo/tools/utils/package.json", []byte("{}"))
	return fs
}

func findResult(results []ValidationResult, category, contains string) *ValidationResult {
	for i, r := range results {
		if r.Category == category && strings.Contains(r.Message, contains) {
			return &results[i]
		}
	}
	return nil
}

func TestValidator_Valid(t *testing.T) {
	results, err := NewValidator(repoFS(), validConfig()).Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if HasErrors(results) {
		t.Errorf("unexpected errors: %+v", results)
	}
	if WarningCount(results) != 0 {
		t.Errorf("unexpected warnings: %+v", results)
	}
	if findResult(results, "Roots", "2 of 2") == nil {
		t.Errorf("expected roots summary, got %+v", results)
	}
}

func TestValidator_Problems(t *testing.T) {
	negative := -1

	tests := []struct {
		name       string
		mutate     func(*Config)
		category   string
		contains   string
		wantErrors bool
	}{
		{"defaults in use", func(c *Config) {
			c.File = ""
			c.Roots = []string{"/repo/source", "/repo/tools"}
		}, "Config File", "using defaults", false},
		{"missing root", func(c *Config) { c.Roots = append(c.Roots, "legacy") }, "Roots", "will be skipped", false},
		{"no usable root", func(c *Config) { c.Roots = []string{"nope"} }, "Roots", "None of the configured roots", true},
		{"root is a file", func(c *Config) { c.Roots = []string{"source", "source/swap/package.json"} }, "Roots", "not a directory", true},
		{"unknown manifest", func(c *Config) { c.Manifests = []string{"setup.py"} }, "Manifests", "setup.py", true},
		{"negative depth", func(c *Config) { c.MaxDepth = &negative }, "Discovery", "negative", true},
		{"bad glob", func(c *Config) { c.Exclude = []string{"[oops"} }, "Discovery", "not a valid glob", true},
		{"empty namespace", func(c *Config) { c.Namespace = NamespaceConfig{} }, "Namespace", "no dependency would be checked", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			results, err := NewValidator(repoFS(), cfg).Validate(context.Background())
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if findResult(results, tt.category, tt.contains) == nil {
				t.Errorf("no %s result containing %q in %+v", tt.category, tt.contains, results)
			}
			if HasErrors(results) != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v (%+v)", HasErrors(results), tt.wantErrors, results)
			}
		})
	}
}

func TestValidator_NilConfig(t *testing.T) {
	if _, err := NewValidator(repoFS(), nil).Validate(context.Background()); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestValidationCounts(t *testing.T) {
	results := []ValidationResult{
		{Passed: true},
		{Passed: false},
		{Passed: false},
		{Passed: true, Warning: true},
	}
	if ErrorCount(results) != 2 {
		t.Errorf("ErrorCount() = %d, want 2", ErrorCount(results))
	}
	if WarningCount(results) != 1 {
		t.Errorf("WarningCount() = %d, want 1", WarningCount(results))
	}
}
