// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hexdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DefaultWidth is the number of bytes per line when Options.Width is 0.
const DefaultWidth = 16

// MaxWidth is the widest line configuration accepts.
const MaxWidth = 64

// ColorMode selects when output is colored.
type ColorMode string

const (
	// ColorAuto colors output only when the writer is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces ANSI colors.
	ColorAlways ColorMode = "always"
	// ColorNever disables colors.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a color mode name. The empty string is auto.
func ParseColorMode(name string) (ColorMode, error) {
	switch ColorMode(name) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return ColorMode(name), nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always, or never)", name)
	}
}

// Options controls rendering.
type Options struct {
	// Width is the number of bytes per line. Zero means DefaultWidth.
	Width int

	// MaxLines caps the number of lines rendered. Zero means no cap.
	MaxLines int

	// Color selects when ANSI colors are emitted.
	Color ColorMode
}

// Render returns the plain (uncolored) dump of data.
func Render(data []byte, options Options) string {
	var builder strings.Builder
	render(&builder, data, options)
	return builder.String()
}

// Write renders data to w, colored according to options.Color.
func Write(w io.Writer, data []byte, options Options) error {
	plain := Render(data, options)
	if plain == "" {
		return nil
	}

	renderer := lipgloss.NewRenderer(w)
	switch options.Color {
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	}
	style := renderer.NewStyle().Foreground(lipgloss.Color("6"))

	lines := strings.SplitAfter(plain, "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		if _, err := io.WriteString(w, style.Render(body)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func render(builder *strings.Builder, data []byte, options Options) {
	width := options.Width
	if width <= 0 {
		width = DefaultWidth
	}

	lines := 0
	for offset := 0; offset < len(data); offset += width {
		if options.MaxLines > 0 && lines == options.MaxLines {
			fmt.Fprintf(builder, "... %d more bytes\n", len(data)-offset)
			return
		}

		end := min(offset+width, len(data))
		chunk := data[offset:end]

		hex := make([]string, len(chunk))
		for i, b := range chunk {
			hex[i] = fmt.Sprintf("%02x", b)
		}

		fmt.Fprintf(builder, "%04x  %-*s  %s\n", offset, width*3, strings.Join(hex, " "), printable(chunk))
		lines++
	}
}

// printable maps bytes outside the visible ASCII range to '.'.
func printable(chunk []byte) string {
	out := make([]byte, len(chunk))
	for i, b := range chunk {
		if b >= 0x20 && b < 0x7f {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
