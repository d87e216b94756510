// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Color     string   `flag:"color" desc:"color mode"`
		FixSize   bool     `flag:"fix-size,f" desc:"rewrite the declared size"`
		Width     int      `flag:"width" desc:"bytes per line"`
		MaxOutput int64    `flag:"max-output" desc:"payload byte cap"`
		Tags      []string `flag:"tags" desc:"tag list"`
		Untagged  string   // no flag tag: should be skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--color", "never",
		"-f",
		"--width", "8",
		"--max-output", "1099511627776",
		"--tags", "a,b,c",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Color != "never" {
		t.Errorf("Color = %q, want %q", p.Color, "never")
	}
	if !p.FixSize {
		t.Error("FixSize = false, want true")
	}
	if p.Width != 8 {
		t.Errorf("Width = %d, want 8", p.Width)
	}
	if p.MaxOutput != 1099511627776 {
		t.Errorf("MaxOutput = %d, want 1099511627776", p.MaxOutput)
	}
	if len(p.Tags) != 3 || p.Tags[0] != "a" || p.Tags[2] != "c" {
		t.Errorf("Tags = %v, want [a b c]", p.Tags)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty (should be skipped)", p.Untagged)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Color   string   `flag:"color" desc:"color mode" default:"auto"`
		Width   int      `flag:"width" desc:"bytes per line" default:"16"`
		Limit   int64    `flag:"limit" desc:"limit" default:"100"`
		Hexdump bool     `flag:"hexdump" desc:"print a hex dump" default:"true"`
		Tags    []string `flag:"tags" desc:"tags" default:"x,y"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Color != "auto" {
		t.Errorf("Color = %q, want %q", p.Color, "auto")
	}
	if p.Width != 16 {
		t.Errorf("Width = %d, want 16", p.Width)
	}
	if p.Limit != 100 {
		t.Errorf("Limit = %d, want 100", p.Limit)
	}
	if !p.Hexdump {
		t.Error("Hexdump = false, want true")
	}
	if len(p.Tags) != 2 || p.Tags[0] != "x" || p.Tags[1] != "y" {
		t.Errorf("Tags = %v, want [x y]", p.Tags)
	}
}

// optionalDirectory implements FlagBinder with a value-optional flag,
// the case struct tags cannot express.
type optionalDirectory struct {
	Directory string
}

func (o *optionalDirectory) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.Directory, "dump", "d", "", "dump directory")
	flagSet.Lookup("dump").NoOptDefVal = "@default"
}

func TestBindFlags_NamedFlagBinder(t *testing.T) {
	type params struct {
		Dump  optionalDirectory
		Width int `flag:"width" desc:"bytes per line"`
	}

	tests := []struct {
		name      string
		args      []string
		directory string
		remaining []string
	}{
		{"bare long", []string{"--dump", "movie.swf"}, "@default", []string{"movie.swf"}},
		{"bare short", []string{"-d", "movie.swf"}, "@default", []string{"movie.swf"}},
		{"long with value", []string{"--dump=/tmp/out", "movie.swf"}, "/tmp/out", []string{"movie.swf"}},
		{"absent", []string{"movie.swf"}, "", []string{"movie.swf"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var p params
			flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
			if err := BindFlags(&p, flagSet); err != nil {
				t.Fatalf("BindFlags: %v", err)
			}
			if err := flagSet.Parse(test.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if p.Dump.Directory != test.directory {
				t.Errorf("Directory = %q, want %q", p.Dump.Directory, test.directory)
			}
			if strings.Join(flagSet.Args(), " ") != strings.Join(test.remaining, " ") {
				t.Errorf("remaining = %v, want %v", flagSet.Args(), test.remaining)
			}
		})
	}
}

func TestBindFlags_EmbeddedStructRecursion(t *testing.T) {
	type params struct {
		JSONOutput
		Verbose bool `flag:"verbose" desc:"verbose"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--json", "--verbose"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON {
		t.Error("OutputJSON = false, want true")
	}
	if !p.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestBindFlags_Errors(t *testing.T) {
	type named struct {
		Name string `flag:"name"`
	}
	type badDefault struct {
		Count int `flag:"count" default:"not_a_number"`
	}
	type unsupported struct {
		Ratio float32 `flag:"ratio"`
	}

	notStruct := "not a struct"
	tests := []struct {
		name   string
		params any
	}{
		{"not pointer", named{}},
		{"not struct", &notStruct},
		{"bad default", &badDefault{}},
		{"unsupported type", &unsupported{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFlagsFromParams(t *testing.T) {
	type params struct {
		Color string `flag:"color" desc:"color mode" default:"auto"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--color", "always", "movie.swf"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Color != "always" {
		t.Errorf("Color = %q, want %q", p.Color, "always")
	}
	if remaining := flagSet.Args(); len(remaining) != 1 || remaining[0] != "movie.swf" {
		t.Errorf("remaining args = %v, want [movie.swf]", remaining)
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil input, got none")
		}
	}()
	FlagsFromParams("test", nil)
}
