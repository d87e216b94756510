// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
	"github.com/bureau-foundation/flashkit/lib/config"
)

// ConfigParams selects and overrides the configuration file.
type ConfigParams struct {
	ConfigFile string `json:"config"    flag:"config"    desc:"configuration file, YAML or JSONC (default: $FLASHKIT_CONFIG)"`
	LogLevel   string `json:"log_level" flag:"log-level" desc:"log level: debug, info, warn, error (overrides log.level)"`
}

// load reads the configuration named by --config, or by
// FLASHKIT_CONFIG, falling back to the defaults.
func (p *ConfigParams) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if p.ConfigFile != "" {
		cfg, err = config.LoadFile(p.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	return cfg, nil
}

// dumpRequestedDefault is the value --dump takes when given without a
// directory.
const dumpRequestedDefault = "@configured"

// dumpFlag is --dump/-d, whose directory is optional.
type dumpFlag struct {
	Directory string
}

func (d *dumpFlag) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&d.Directory, "dump", "d", "",
		"write the decompressed object to `DIR`; without a value, to dump.directory (default: the system temp directory)")
	flagSet.Lookup("dump").NoOptDefVal = dumpRequestedDefault
}

// requested reports whether --dump was given.
func (d *dumpFlag) requested() bool {
	return d.Directory != ""
}

// resolve returns the dump directory and the remaining positional
// arguments. pflag never consumes a separate argument for an optional
// value, so "-d DIR FILE" arrives as two positionals.
func (d *dumpFlag) resolve(configured string, args []string) (string, []string) {
	if d.Directory != dumpRequestedDefault {
		return d.Directory, args
	}
	if len(args) == 2 {
		return args[0], args[1:]
	}
	return configured, args
}
