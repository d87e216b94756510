// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "flashkit",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "swf",
				Run: func(args []string) error {
					called = "swf"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"swf"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "swf" {
		t.Errorf("dispatched to %q, want %q", called, "swf")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "flashkit",
		Subcommands: []*Command{
			{
				Name: "swf",
				Subcommands: []*Command{
					{
						Name: "decompress",
						Run: func(args []string) error {
							called = "swf decompress"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"swf", "decompress", "movie.swf"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "swf decompress" {
		t.Errorf("dispatched to %q, want %q", called, "swf decompress")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "movie.swf" {
		t.Errorf("args = %v, want [movie.swf]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var width int
	var target string

	command := &Command{
		Name: "decompress",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decompress", pflag.ContinueOnError)
			flagSet.IntVar(&width, "width", 16, "bytes per line")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--width", "8", "movie.swf"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if width != 8 {
		t.Errorf("width = %d, want 8", width)
	}
	if target != "movie.swf" {
		t.Errorf("target = %q, want %q", target, "movie.swf")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "decompress",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decompress", pflag.ContinueOnError)
			flagSet.Bool("fix-size", false, "rewrite the declared size")
			flagSet.Int("width", 16, "bytes per line")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--fix-sise"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --fix-size") {
		t.Errorf("error = %q, want suggestion for '--fix-size'", errStr)
	}
	if !strings.Contains(errStr, "fix-sise") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "decompress",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decompress", pflag.ContinueOnError)
			flagSet.Bool("fix-size", false, "rewrite the declared size")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "swf",
		Subcommands: []*Command{
			{Name: "decompress"},
			{Name: "info"},
		},
	}

	err := root.Execute([]string{"decompres"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"decompress\"") {
		t.Errorf("error = %q, want suggestion for 'decompress'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "swf",
		Subcommands: []*Command{
			{Name: "decompress"},
			{Name: "info"},
		},
	}

	err := root.Execute([]string{"zzzzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var output bytes.Buffer
			root := &Command{
				Name:       "swf",
				Summary:    "SWF container analysis",
				HelpOutput: &output,
				Subcommands: []*Command{
					{Name: "decompress", Summary: "Decompress an SWF container"},
				},
			}

			if err := root.Execute([]string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
			if !strings.Contains(output.String(), "decompress") {
				t.Errorf("help output missing subcommand listing:\n%s", output.String())
			}
		})
	}
}

func TestCommand_Execute_TrailingHelpFlag(t *testing.T) {
	var output bytes.Buffer
	ran := false
	command := &Command{
		Name:       "decompress",
		Usage:      "flashkit swf decompress [flags] FILE",
		HelpOutput: &output,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decompress", pflag.ContinueOnError)
			flagSet.Bool("fix-size", false, "rewrite the size field")
			return flagSet
		},
		Run: func(args []string) error {
			ran = true
			return nil
		},
	}

	if err := command.Execute([]string{"sample.swf", "--fix-size", "-h"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ran {
		t.Error("Run should not be called when help is requested")
	}
	if !strings.Contains(output.String(), "flashkit swf decompress [flags] FILE") {
		t.Errorf("help output missing usage:\n%s", output.String())
	}
}

func TestCommand_Execute_HelpOutputInherited(t *testing.T) {
	var output bytes.Buffer
	root := &Command{
		Name:       "flashkit",
		HelpOutput: &output,
		Subcommands: []*Command{
			{
				Name:    "swf",
				Summary: "SWF container analysis",
				Subcommands: []*Command{
					{Name: "decompress", Summary: "Decompress an SWF container"},
				},
			},
		},
	}

	if err := root.Execute([]string{"swf", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(output.String(), "flashkit swf <command> [flags]") {
		t.Errorf("nested help should go to the root's HelpOutput:\n%s", output.String())
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name:       "swf",
		HelpOutput: io.Discard,
		Subcommands: []*Command{
			{Name: "decompress", Summary: "Decompress an SWF container"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "flashkit",
		Description: "Flash container analysis.",
		Subcommands: []*Command{
			{Name: "swf", Summary: "SWF container operations"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Decompress a sample and dump it",
				Command:     "flashkit swf decompress --dump sample.swf",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Flash container analysis.",
		"Usage:",
		"flashkit <command> [flags]",
		"Commands:",
		"swf",
		"SWF container operations",
		"Examples:",
		"# Decompress a sample and dump it",
		"flashkit swf decompress --dump sample.swf",
		"Run 'flashkit <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "decompress",
		Summary: "Decompress an SWF container",
		Usage:   "flashkit swf decompress [flags] FILE",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decompress", pflag.ContinueOnError)
			flagSet.Int("width", 16, "bytes per hex dump line")
			flagSet.Bool("fix-size", false, "rewrite the declared size")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"flashkit swf decompress [flags] FILE",
		"Flags:",
		"--width",
		"--fix-size",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "flashkit"}
	swf := &Command{Name: "swf", parent: root}
	decompress := &Command{Name: "decompress", parent: swf}

	if got := root.fullName(); got != "flashkit" {
		t.Errorf("root.fullName() = %q, want %q", got, "flashkit")
	}
	if got := decompress.fullName(); got != "flashkit swf decompress" {
		t.Errorf("decompress.fullName() = %q, want %q", got, "flashkit swf decompress")
	}
}
