// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
	"github.com/bureau-foundation/flashkit/lib/binhash"
	"github.com/bureau-foundation/flashkit/lib/config"
	"github.com/bureau-foundation/flashkit/lib/dumpstore"
	"github.com/bureau-foundation/flashkit/lib/hexdump"
	"github.com/bureau-foundation/flashkit/lib/session"
	"github.com/bureau-foundation/flashkit/lib/swf"
)

type decompressParams struct {
	ConfigParams
	Dump dumpFlag `json:"-"`

	FixSize    bool   `json:"fix_size"    flag:"fix-size"    desc:"rewrite the declared size in the output with its real length"`
	StrictSize bool   `json:"strict_size" flag:"strict-size" desc:"take the declared size of CWS and ZWS files literally"`
	NoLZMA     bool   `json:"no_lzma"     flag:"no-lzma"     desc:"disable the LZMA codec"`
	MaxOutput  int64  `json:"max_output"  flag:"max-output"  desc:"fail when the decompressed body exceeds this many bytes (0 = unlimited)"`
	NoHexdump  bool   `json:"no_hexdump"  flag:"no-hexdump"  desc:"do not print the hex dump"`
	MaxLines   int    `json:"max_lines"   flag:"max-lines"   desc:"print at most this many hex dump lines (0 = unlimited)"`
	Width      int    `json:"width"       flag:"width"       desc:"bytes per hex dump line" default:"16"`
	Color      string `json:"color"       flag:"color"       desc:"color the hex dump: auto, always, never" default:"auto"`
}

// apply overlays the flags the user set on the loaded configuration.
func (p *decompressParams) apply(cfg *config.Config, flagSet *pflag.FlagSet) {
	changed := func(name string) bool {
		return flagSet != nil && flagSet.Changed(name)
	}
	if changed("fix-size") {
		cfg.Decompress.FixSize = p.FixSize
	}
	if changed("strict-size") {
		cfg.Decompress.StrictSize = p.StrictSize
	}
	if changed("no-lzma") {
		cfg.Decompress.LZMA = !p.NoLZMA
	}
	if changed("max-output") {
		cfg.Decompress.MaxOutput = p.MaxOutput
	}
	if changed("no-hexdump") {
		cfg.Display.Hexdump = !p.NoHexdump
	}
	if changed("max-lines") {
		cfg.Display.MaxLines = p.MaxLines
	}
	if changed("width") {
		cfg.Display.Width = p.Width
	}
	if changed("color") {
		cfg.Display.Color = p.Color
	}
}

func decompressCommand(env *environment) *cli.Command {
	var (
		params  decompressParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "decompress",
		Summary: "Decompress a Flash object",
		Description: `Decompress a CWS (zlib) or ZWS (LZMA) Flash object into an FWS
container and print a hex dump of the result.

The output keeps the version byte and the declared size of the input.
--fix-size rewrites the size field with the real output length instead.

With --dump the result is written to DIR (or, without a value, to the
configured dump directory) under the hex digest of its content, and the
dumped file is opened as the new current session.`,
		Usage: "flashkit swf decompress [flags] FILE",
		Examples: []cli.Example{
			{
				Description: "Decompress and print a hex dump",
				Command:     "flashkit swf decompress sample.swf",
			},
			{
				Description: "Decompress into the configured dump directory",
				Command:     "flashkit swf decompress --dump sample.swf",
			},
			{
				Description: "Decompress into ./out without printing the dump",
				Command:     "flashkit swf decompress --no-hexdump -d out sample.swf",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("decompress", &params)
			return flagSet
		},
		Run: func(args []string) error {
			cfg, err := params.load()
			if err != nil {
				return err
			}
			params.apply(cfg, flagSet)
			if err := cfg.Validate(); err != nil {
				return cli.Validation("%w", err)
			}
			return runDecompress(env, cfg, &params, args)
		},
	}
}

func runDecompress(env *environment, cfg *config.Config, params *decompressParams, args []string) error {
	dumpDirectory, args := params.Dump.resolve(cfg.Dump.Directory, args)
	if len(args) != 1 {
		return cli.Validation("expected exactly one FILE argument, got %d", len(args))
	}
	path := args[0]

	level, err := cfg.LogLevel()
	if err != nil {
		return cli.Validation("%w", err)
	}
	logger := env.newLogger(level).With("command", "swf/decompress", "path", path)

	manager := session.NewManager(logger)
	defer manager.Close()

	current, err := openSession(manager, path)
	if err != nil {
		return err
	}
	if !current.IsFlash() {
		return cli.Validation("%s does not appear to be a valid SWF object (%s)", path, current.Type)
	}

	envelope, err := readEnvelope(current, readOptions(cfg)...)
	if errors.Is(err, swf.ErrTruncatedBody) {
		logger.Warn("declared size exceeds the file, decompressing what is there",
			"declared_size", envelope.DeclaredSize,
			"file_size", current.Size,
		)
		err = nil
	}
	if err != nil {
		return envelopeError(path, err)
	}
	logger.Info("compression detected", "compression", envelope.Kind().String(), "version", envelope.Version)

	decompressor := newDecompressor(cfg, logger)
	result, err := decompressor.Decompress(envelope)
	if err != nil {
		return decompressError(path, err)
	}
	if result.Status == swf.StatusAlreadyUncompressed {
		fmt.Fprintf(env.stdout, "%s does not appear to be compressed\n", path)
		return nil
	}
	logger.Info("decompressed", "compression", result.Kind.String(), "size", len(result.Data))

	if cfg.Display.Hexdump {
		color, _ := hexdump.ParseColorMode(cfg.Display.Color)
		err := hexdump.Write(env.stdout, result.Data, hexdump.Options{
			Width:    cfg.Display.Width,
			MaxLines: cfg.Display.MaxLines,
			Color:    color,
		})
		if err != nil {
			return cli.Internal("writing hex dump: %w", err)
		}
	}

	if !params.Dump.requested() {
		return nil
	}
	dumpPath, err := writeDump(cfg, dumpDirectory, result.Data, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "Flash object dumped at %s\n", dumpPath)

	return reopenDump(manager, decompressor, dumpPath, logger)
}

func readOptions(cfg *config.Config) []swf.ReadOption {
	if cfg.Decompress.StrictSize {
		return nil
	}
	return []swf.ReadOption{swf.WithExpandedSizes()}
}

func newDecompressor(cfg *config.Config, logger *slog.Logger) *swf.Decompressor {
	options := []swf.Option{
		swf.WithLogger(logger),
		swf.WithMaxPayload(cfg.Decompress.MaxOutput),
	}
	if !cfg.Decompress.LZMA {
		options = append(options, swf.WithoutLZMA())
	}
	if cfg.Decompress.FixSize {
		options = append(options, swf.WithSizeFixup())
	}
	return swf.NewDecompressor(options...)
}

func openSession(manager *session.Manager, path string) (*session.Session, error) {
	current, err := manager.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("%s: no such file", path)
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return current, nil
}

// readEnvelope reads the envelope of the session's content. On
// ErrTruncatedBody the envelope is returned along with the error.
func readEnvelope(current *session.Session, options ...swf.ReadOption) (*swf.Envelope, error) {
	source, err := current.Reader()
	if err != nil {
		return nil, err
	}
	defer source.Close()
	return swf.ReadEnvelope(source, options...)
}

func envelopeError(path string, err error) error {
	if errors.Is(err, swf.ErrTruncatedHeader) {
		return cli.Validation("%s: %w", path, err)
	}
	return cli.Internal("reading %s: %w", path, err)
}

func decompressError(path string, err error) error {
	switch {
	case errors.Is(err, swf.ErrMissingDependency):
		return cli.NotFound("%s: %w", path, err).WithHint(
			"LZMA is disabled by --no-lzma or decompress.lzma, or the binary was built with the flashkit_nolzma tag.")
	case errors.Is(err, swf.ErrTruncatedBody),
		errors.Is(err, swf.ErrDecompressionFailed),
		errors.Is(err, swf.ErrUnsupportedFormat):
		return cli.Validation("%s: %w", path, err)
	default:
		return cli.Internal("decompressing %s: %w", path, err)
	}
}

func writeDump(cfg *config.Config, directory string, data []byte, logger *slog.Logger) (string, error) {
	algorithm, err := binhash.ParseAlgorithm(cfg.Dump.Hash)
	if err != nil {
		return "", cli.Validation("%w", err)
	}
	compression, err := dumpstore.ParseCompression(cfg.Dump.Compression)
	if err != nil {
		return "", cli.Validation("%w", err)
	}

	store, err := dumpstore.New(directory,
		dumpstore.WithAlgorithm(algorithm),
		dumpstore.WithCompression(compression),
		dumpstore.WithLogger(logger),
	)
	if err != nil {
		return "", cli.Validation("dump directory: %w", err)
	}
	dumpPath, err := store.Write(data)
	if err != nil {
		return "", cli.Internal("writing dump: %w", err)
	}
	return dumpPath, nil
}

// reopenDump makes the dump the current session and checks that it now
// reads as an uncompressed container.
func reopenDump(manager *session.Manager, decompressor *swf.Decompressor, dumpPath string, logger *slog.Logger) error {
	reopened, err := manager.Open(dumpPath)
	if err != nil {
		return cli.Internal("opening dump: %w", err)
	}
	envelope, err := readEnvelope(reopened)
	if err != nil && !errors.Is(err, swf.ErrTruncatedBody) {
		return cli.Internal("reading dump %s: %w", dumpPath, err)
	}
	result, err := decompressor.Decompress(envelope)
	if err != nil {
		return cli.Internal("checking dump %s: %w", dumpPath, err)
	}
	if result.Status != swf.StatusAlreadyUncompressed {
		return cli.Internal("dump %s is still %s compressed", dumpPath, result.Kind)
	}
	logger.Info("session switched to dump", "session", reopened.Path, "type", reopened.Type)
	return nil
}
