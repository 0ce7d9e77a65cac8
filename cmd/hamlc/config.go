package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	v "github.com/neurodesk/hamlc/pkg/validator"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "hamlc.yaml"

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

type compilerConfig struct {
	SourceExtensions []string `yaml:"source_extensions"`
	OutputExtension  string   `yaml:"output_extension"`
	CheckOutput      bool     `yaml:"check_output"`
	LogLevel         string   `yaml:"log_level"`
	CacheDir         string   `yaml:"cache_dir,omitempty"` // empty disables the build cache
}

func defaultConfig() compilerConfig {
	return compilerConfig{
		SourceExtensions: []string{".haml", ".hamlpy"},
		OutputExtension:  ".html",
		CheckOutput:      true,
		LogLevel:         "info",
	}
}

// loadConfig overlays the YAML file at path onto c. A missing file is only
// an error when the path was given explicitly.
func (c *compilerConfig) loadConfig(path string, explicit bool) error {
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding config file: %w", err)
	}
	return nil
}

func (c compilerConfig) Validate() error {
	var outputErr error
	if slices.Contains(c.SourceExtensions, c.OutputExtension) {
		outputErr = fmt.Errorf("output_extension %q would overwrite sources", c.OutputExtension)
	}
	return v.All(
		v.HasElements(c.SourceExtensions, "source_extensions"),
		v.Map(c.SourceExtensions, v.FileExtension, "source_extensions"),
		v.NoDuplicates(c.SourceExtensions, "source_extensions"),
		v.FileExtension(c.OutputExtension, "output_extension"),
		outputErr,
		v.MatchesAllowed(c.LogLevel, slices.Sorted(maps.Keys(logLevels)), "log_level"),
	)
}

func (c compilerConfig) isSource(name string) bool {
	for _, ext := range c.SourceExtensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}
