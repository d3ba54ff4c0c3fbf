package check

import (
	"path/filepath"
	"testing"

	"github.com/indaco/depsync/internal/config"
	"github.com/indaco/depsync/internal/printer"
)

// workspaceFiles is a small workspace with one mismatch, one consistent
// declaration and one missing internal package.
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
	"tools/c/package.json": `{
  "name": "@airswap/c",
  "version": "0.1.0",
  "devDependencies": {
    "@airswap/a": "1.0.0",
    "@airswap/ghost": "1.0.0"
  }
}
`,
}

// testConfig returns a configuration scanning dir/source and dir/tools.
func testConfig(dir string) *config.Config {
	return &config.Config{
		Roots:     []string{filepath.Join(dir, "source"), filepath.Join(dir, "tools")},
		Manifests: []string{"package.json"},
		Namespace: config.NamespaceConfig{Keywords: []string{"airswap"}},
	}
}

func noColor(t *testing.T) {
	t.Helper()
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })
}
