// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/flashkit/lib/binhash"
	"github.com/bureau-foundation/flashkit/lib/dumpstore"
	"github.com/bureau-foundation/flashkit/lib/hexdump"
)

// EnvironmentVariable names the variable [Load] reads the config path from.
const EnvironmentVariable = "FLASHKIT_CONFIG"

// Config is the flashkit configuration.
type Config struct {
	// Dump configures where and how decompressed files are written.
	Dump DumpConfig `yaml:"dump" json:"dump"`

	// Display configures terminal output.
	Display DisplayConfig `yaml:"display" json:"display"`

	// Decompress configures the SWF decompressor.
	Decompress DecompressConfig `yaml:"decompress" json:"decompress"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log" json:"log"`
}

// DumpConfig configures the dump store.
type DumpConfig struct {
	// Directory is where dumps go when --dump has no explicit directory.
	// Default: the system temporary directory.
	Directory string `yaml:"directory" json:"directory"`

	// Hash names dumped files: md5, sha256, or blake3.
	// Default: md5
	Hash string `yaml:"hash" json:"hash"`

	// Compression is the at-rest encoding: none, zstd, or lz4.
	// Default: none
	Compression string `yaml:"compression" json:"compression"`
}

// DisplayConfig configures the hex dump printed after decompression.
type DisplayConfig struct {
	// Hexdump enables the hex dump.
	// Default: true
	Hexdump bool `yaml:"hexdump" json:"hexdump"`

	// Width is the number of bytes per line.
	// Default: 16
	Width int `yaml:"width" json:"width"`

	// MaxLines limits the dump; 0 prints everything.
	MaxLines int `yaml:"max_lines" json:"max_lines"`

	// Color is auto, always, or never.
	// Default: auto
	Color string `yaml:"color" json:"color"`
}

// DecompressConfig configures the decompressor.
type DecompressConfig struct {
	// LZMA enables the LZMA codec when the binary includes it.
	// Default: true
	LZMA bool `yaml:"lzma" json:"lzma"`

	// FixSize rewrites the declared size field in the output.
	FixSize bool `yaml:"fix_size" json:"fix_size"`

	// MaxOutput caps the decompressed payload in bytes; 0 is unlimited.
	MaxOutput int64 `yaml:"max_output" json:"max_output"`

	// StrictSize takes the declared size of CWS and ZWS files literally,
	// so a compressed file shorter than its declared size is truncated.
	// By default the declared size is read as the expanded length.
	StrictSize bool `yaml:"strict_size" json:"strict_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level" json:"level"`
}

// Default returns the built-in configuration, used as-is when no config
// file is given and as the base that a config file overrides.
func Default() *Config {
	return &Config{
		Dump: DumpConfig{
			Directory:   os.TempDir(),
			Hash:        string(binhash.MD5),
			Compression: string(dumpstore.CompressionNone),
		},
		Display: DisplayConfig{
			Hexdump: true,
			Width:   hexdump.DefaultWidth,
			Color:   string(hexdump.ColorAuto),
		},
		Decompress: DecompressConfig{
			LZMA: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by FLASHKIT_CONFIG, or returns [Default]
// when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Files ending
// in .json or .jsonc are parsed as JSON with comments; anything else is
// YAML. Keys absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	extension := strings.ToLower(filepath.Ext(path))
	if extension == ".json" || extension == ".jsonc" {
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":   os.Getenv("HOME"),
		"TMPDIR": os.TempDir(),
	}
	c.Dump.Directory = expandVars(c.Dump.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Provided vars
// take precedence over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Dump.Directory == "" {
		errs = append(errs, fmt.Errorf("dump.directory is required"))
	}
	if _, err := binhash.ParseAlgorithm(c.Dump.Hash); err != nil {
		errs = append(errs, fmt.Errorf("dump.hash: %w", err))
	}
	if _, err := dumpstore.ParseCompression(c.Dump.Compression); err != nil {
		errs = append(errs, fmt.Errorf("dump.compression: %w", err))
	}

	if c.Display.Width < 1 || c.Display.Width > hexdump.MaxWidth {
		errs = append(errs, fmt.Errorf("display.width must be between 1 and %d, got %d", hexdump.MaxWidth, c.Display.Width))
	}
	if c.Display.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("display.max_lines must not be negative, got %d", c.Display.MaxLines))
	}
	if _, err := hexdump.ParseColorMode(c.Display.Color); err != nil {
		errs = append(errs, fmt.Errorf("display.color: %w", err))
	}

	if c.Decompress.MaxOutput < 0 {
		errs = append(errs, fmt.Errorf("decompress.max_output must not be negative, got %d", c.Decompress.MaxOutput))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}
	return level, nil
}
