package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/manifest"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Roots", "Namespace").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration files and settings.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(fs core.FileSystem, cfg *Config) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	// Reset validations
	v.validations = make([]ValidationResult, 0)

	if v.cfg == nil {
		return nil, errors.New("no configuration to validate")
	}

	v.validateConfigFile()

	if err := v.validateRoots(ctx); err != nil {
		return nil, err
	}

	v.validateManifests()
	v.validateDiscovery()
	v.validateNamespace()

	return v.validations, nil
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) validateConfigFile() {
	if v.cfg.File == "" {
		v.addValidation("Config File", true,
			fmt.Sprintf("No %s found, using defaults (run 'depsync init' to create one)", DefaultConfigFile), true)
		return
	}
	v.addValidation("Config File", true, fmt.Sprintf("Loaded %s", v.cfg.File), false)
}

// validateRoots checks that the roots exist and at least one is usable.
func (v *Validator) validateRoots(ctx context.Context) error {
	usable := 0
	for _, root := range v.cfg.RootPaths() {
		info, err := v.fs.Stat(ctx, root)
		switch {
		case err == nil && info.IsDir():
			usable++
		case err == nil:
			v.addValidation("Roots", false, fmt.Sprintf("Root '%s' is not a directory", root), false)
		case errors.Is(err, fs.ErrNotExist):
			v.addValidation("Roots", true, fmt.Sprintf("Root '%s' does not exist and will be skipped", root), true)
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			v.addValidation("Roots", false, fmt.Sprintf("Cannot access root '%s': %v", root, err), false)
		}
	}

	if usable == 0 {
		v.addValidation("Roots", false, "None of the configured roots exist", false)
		return nil
	}
	v.addValidation("Roots", true, fmt.Sprintf("%d of %d root(s) available", usable, len(v.cfg.Roots)), false)
	return nil
}

func (v *Validator) validateManifests() {
	valid := true
	for _, name := range v.cfg.Manifests {
		if _, ok := manifest.LookupKnownManifest(name); !ok {
			v.addValidation("Manifests", false, fmt.Sprintf("Unsupported manifest '%s'", name), false)
			valid = false
		}
	}
	if valid {
		v.addValidation("Manifests", true,
			fmt.Sprintf("Reading %s", strings.Join(v.cfg.Manifests, ", ")), false)
	}
}

func (v *Validator) validateDiscovery() {
	if v.cfg.MaxDepth != nil && *v.cfg.MaxDepth < 0 {
		v.addValidation("Discovery", false, "max-depth cannot be negative", false)
	}

	for i, pattern := range v.cfg.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			v.addValidation("Discovery", false,
				fmt.Sprintf("Exclude pattern %d: '%s' is not a valid glob", i+1, pattern), false)
		}
	}

	v.addValidation("Discovery", true,
		fmt.Sprintf("Discovery configured with %d exclude pattern(s)", len(v.cfg.Exclude)), false)
}

func (v *Validator) validateNamespace() {
	ns := v.cfg.InternalNamespace()
	if ns.IsEmpty() {
		v.addValidation("Namespace", false,
			"No keywords or prefixes configured, no dependency would be checked", false)
		return
	}
	v.addValidation("Namespace", true,
		fmt.Sprintf("%d keyword(s), %d prefix(es), %d excluded name(s)",
			len(ns.Keywords), len(ns.Prefixes), len(ns.Exclude)), false)
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
