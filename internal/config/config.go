package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/depgraph"
	"github.com/indaco/depsync/internal/discovery"
	"github.com/indaco/depsync/internal/manifest"
)

const (
	// DefaultConfigFile is the config file looked up in the working directory.
	DefaultConfigFile = ".depsync.yaml"

	// EnvConfig overrides the config file path.
	EnvConfig = "DEPSYNC_CONFIG"

	// EnvRoots overrides the configured roots. Entries are separated by
	// os.PathListSeparator.
	EnvRoots = "DEPSYNC_ROOTS"
)

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW

// NamespaceConfig selects the internal packages to check.
type NamespaceConfig struct {
	Keywords []string `yaml:"keywords,omitempty"`
	Prefixes []string `yaml:"prefixes,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
}

// PolicyConfig tunes when a check fails.
type PolicyConfig struct {
	FailOnMissing bool `yaml:"fail-on-missing"`
}

// Config is the main configuration structure for depsync.
type Config struct {
	Roots     []string        `yaml:"roots"`
	Manifests []string        `yaml:"manifests,omitempty"`
	Exclude   []string        `yaml:"exclude,omitempty"`
	MaxDepth  *int            `yaml:"max-depth,omitempty"`
	Namespace NamespaceConfig `yaml:"namespace"`
	Policy    PolicyConfig    `yaml:"policy"`

	// File is the config file the values came from; empty when defaults
	// are in use.
	File string `yaml:"-"`
}

// DefaultRoots are scanned when no roots are configured.
func DefaultRoots() []string {
	return []string{"source", "tools"}
}

// DefaultManifests are read when no manifest names are configured.
func DefaultManifests() []string {
	return []string{"package.json"}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	depth := core.MaxDiscoveryDepth
	return &Config{
		Roots:     DefaultRoots(),
		Manifests: DefaultManifests(),
		MaxDepth:  &depth,
	}
}

// LoadConfigFn loads the configuration from path. It is a variable so
// commands can be tested without touching the working directory.
var LoadConfigFn = loadConfig

func loadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultConfigFile
	}

	cfg, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	// Highest priority: ENV variable
	if envRoots := os.Getenv(EnvRoots); envRoots != "" {
		roots, err := parseEnvRoots(envRoots)
		if err != nil {
			return nil, err
		}
		cfg.Roots = roots
	}

	return cfg, nil
}

// readConfigFile decodes path strictly. A missing file yields the defaults.
func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	cfg.File = path
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Roots) == 0 {
		c.Roots = DefaultRoots()
	}
	if len(c.Manifests) == 0 {
		c.Manifests = DefaultManifests()
	}
	if c.MaxDepth == nil {
		depth := core.MaxDiscoveryDepth
		c.MaxDepth = &depth
	}
}

// parseEnvRoots splits DEPSYNC_ROOTS. Relative entries that climb out of
// the working directory are rejected.
func parseEnvRoots(value string) ([]string, error) {
	var roots []string
	for _, entry := range filepath.SplitList(value) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		clean := filepath.Clean(entry)
		if !filepath.IsAbs(clean) && (clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))) {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed in %q, use absolute path instead", EnvRoots, entry)
		}
		roots = append(roots, clean)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("invalid %s: no roots given", EnvRoots)
	}
	return roots, nil
}

// BaseDir is the directory relative roots are resolved against: the
// directory holding the config file, or the working directory.
func (c *Config) BaseDir() string {
	if c.File == "" {
		return "."
	}
	return filepath.Dir(c.File)
}

// RootPaths returns the roots resolved against BaseDir.
func (c *Config) RootPaths() []string {
	base := c.BaseDir()
	paths := make([]string, len(c.Roots))
	for i, root := range c.Roots {
		if filepath.IsAbs(root) {
			paths[i] = filepath.Clean(root)
			continue
		}
		paths[i] = filepath.Join(base, root)
	}
	return paths
}

// DiscoveryOptions returns the walker options for this configuration.
func (c *Config) DiscoveryOptions() discovery.Options {
	opts := discovery.Options{
		Filenames: c.Manifests,
		Exclude:   c.Exclude,
	}
	if c.MaxDepth != nil {
		opts.MaxDepth = *c.MaxDepth
	}
	return opts
}

// InternalNamespace returns the namespace predicate configuration.
func (c *Config) InternalNamespace() depgraph.Namespace {
	return depgraph.Namespace{
		Keywords: c.Namespace.Keywords,
		Prefixes: c.Namespace.Prefixes,
		Exclude:  c.Namespace.Exclude,
	}
}

// NewStore returns a manifest store reading and writing through fs with
// this configuration's discovery options.
func (c *Config) NewStore(fs core.FileSystem) *manifest.FSStore {
	return manifest.NewFSStore(fs, discovery.NewWalker(fs, c.DiscoveryOptions()))
}
