package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/indaco/depsync/internal/core"
)

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// osFileOpener is the production implementation of FileOpener.
type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// osFileWriter is the production implementation of FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// configComments annotates the keys of a generated config file.
var configComments = yaml.CommentMap{
	"$.roots":     {yaml.HeadComment(" Directories scanned for manifests, relative to this file.")},
	"$.manifests": {yaml.HeadComment(" Manifest file names to read: package.json, Chart.yaml, Cargo.toml.")},
	"$.max-depth": {yaml.HeadComment(" Directory levels visited below each root.")},
	"$.namespace": {yaml.HeadComment(" Dependencies whose names contain a keyword or start with a prefix are internal.")},
	"$.policy":    {yaml.HeadComment(" Set fail-on-missing to fail when an internal dependency has no manifest.")},
}

// yamlMarshaler is the production implementation of core.Marshaler using YAML.
type yamlMarshaler struct{}

// configHeader opens every generated config file.
const configHeader = "# depsync configuration file\n# Generated by 'depsync init'\n\n"

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(v, yaml.WithComment(configComments), yaml.IndentSequence(true))
	if err != nil {
		return nil, err
	}
	return append([]byte(configHeader), data...), nil
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save saves the configuration to the default config file.
func (s *ConfigSaver) Save(cfg *Config) error {
	return s.SaveTo(cfg, DefaultConfigFile)
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

// defaultConfigSaver is the default ConfigSaver instance.
var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// SaveConfigFn writes cfg to path. It is a variable so commands can be
// tested without writing files.
var SaveConfigFn = func(cfg *Config, path string) error {
	return defaultConfigSaver.SaveTo(cfg, path)
}
