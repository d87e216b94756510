// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
	"github.com/bureau-foundation/flashkit/lib/binhash"
	"github.com/bureau-foundation/flashkit/lib/codec"
	"github.com/bureau-foundation/flashkit/lib/config"
	"github.com/bureau-foundation/flashkit/lib/session"
	"github.com/bureau-foundation/flashkit/lib/swf"
)

type infoParams struct {
	ConfigParams
	cli.JSONOutput
	CBOR       bool `json:"-"           flag:"cbor"        desc:"output as CBOR"`
	StrictSize bool `json:"strict_size" flag:"strict-size" desc:"take the declared size of CWS and ZWS files literally"`
	Check      bool `json:"check"       flag:"check"       desc:"exit with status 2 when the file is shorter than its declared size"`
}

// incompleteExitCode is the --check exit status for a truncated file.
const incompleteExitCode = 2

// infoReport describes one envelope.
type infoReport struct {
	Path            string              `json:"path"`
	Type            string              `json:"type"`
	Signature       swf.Signature       `json:"signature"`
	Compression     swf.CompressionKind `json:"compression"`
	Version         uint8               `json:"version"`
	DeclaredSize    int32               `json:"declared_size"`
	FileSize        int64               `json:"file_size"`
	Complete        bool                `json:"complete"`
	Warning         string              `json:"warning,omitempty"`
	Digest          string              `json:"digest"`
	DigestAlgorithm binhash.Algorithm   `json:"digest_algorithm"`
	LZMAAvailable   bool                `json:"lzma_available"`
}

func infoCommand(env *environment) *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Show the envelope header of a Flash object",
		Description: `Print the SWF envelope header: signature, compression, version,
declared size, and whether the file holds the declared number of bytes.
The digest uses dump.hash, the same name --dump would give the file.`,
		Usage: "flashkit swf info [flags] FILE",
		Examples: []cli.Example{
			{
				Description: "Show the header",
				Command:     "flashkit swf info sample.swf",
			},
			{
				Description: "Fail in a script when the file is truncated",
				Command:     "flashkit swf info --strict-size --check sample.swf",
			},
			{
				Description: "Emit a CBOR report",
				Command:     "flashkit swf info --cbor sample.swf > sample.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one FILE argument, got %d", len(args))
			}
			if params.OutputJSON && params.CBOR {
				return cli.Validation("--json and --cbor are mutually exclusive")
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}
			if params.StrictSize {
				cfg.Decompress.StrictSize = true
			}
			if err := cfg.Validate(); err != nil {
				return cli.Validation("%w", err)
			}

			report, err := buildInfo(env, cfg, args[0])
			if err != nil {
				return err
			}

			if err := emitInfo(env.stdout, &params, report); err != nil {
				return err
			}
			if params.Check && !report.Complete {
				return &cli.ExitError{Code: incompleteExitCode}
			}
			return nil
		},
	}
}

func buildInfo(env *environment, cfg *config.Config, path string) (*infoReport, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	logger := env.newLogger(level).With("command", "swf/info", "path", path)

	manager := session.NewManager(logger)
	defer manager.Close()

	current, err := openSession(manager, path)
	if err != nil {
		return nil, err
	}

	envelope, err := readEnvelope(current, readOptions(cfg)...)
	var warning string
	if errors.Is(err, swf.ErrTruncatedBody) {
		logger.Warn("declared size exceeds the file", "declared_size", envelope.DeclaredSize, "file_size", current.Size)
		warning = err.Error()
		err = nil
	}
	if err != nil {
		return nil, envelopeError(path, err)
	}

	algorithm, err := binhash.ParseAlgorithm(cfg.Dump.Hash)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	source, err := current.Reader()
	if err != nil {
		return nil, cli.Internal("reading %s: %w", path, err)
	}
	defer source.Close()
	digest, err := binhash.HashReader(algorithm, source)
	if err != nil {
		return nil, cli.Internal("hashing %s: %w", path, err)
	}

	decompressor := newDecompressor(cfg, logger)
	return &infoReport{
		Path:            current.Path,
		Type:            current.Type,
		Signature:       envelope.Signature,
		Compression:     envelope.Kind(),
		Version:         envelope.Version,
		DeclaredSize:    envelope.DeclaredSize,
		FileSize:        current.Size,
		Complete:        envelope.Complete(),
		Warning:         warning,
		Digest:          digest.String(),
		DigestAlgorithm: algorithm,
		LZMAAvailable:   decompressor.LZMAAvailable(),
	}, nil
}

func emitInfo(w io.Writer, params *infoParams, report *infoReport) error {
	if done, err := params.EmitJSON(w, report); done {
		return err
	}
	if params.CBOR {
		return codec.NewEncoder(w).Encode(report)
	}
	return writeInfo(w, report)
}

func writeInfo(w io.Writer, report *infoReport) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Path:\t%s\n", report.Path)
	fmt.Fprintf(writer, "Type:\t%s\n", report.Type)
	fmt.Fprintf(writer, "Signature:\t%s\n", report.Signature)
	fmt.Fprintf(writer, "Compression:\t%s\n", report.Compression)
	fmt.Fprintf(writer, "Version:\t%d\n", report.Version)
	fmt.Fprintf(writer, "Declared size:\t%s (%d bytes)\n", humanSize(int64(report.DeclaredSize)), report.DeclaredSize)
	fmt.Fprintf(writer, "File size:\t%s (%d bytes)\n", humanSize(report.FileSize), report.FileSize)
	fmt.Fprintf(writer, "Complete:\t%t\n", report.Complete)
	if report.Warning != "" {
		fmt.Fprintf(writer, "Warning:\t%s\n", report.Warning)
	}
	fmt.Fprintf(writer, "Digest:\t%s:%s\n", report.DigestAlgorithm, report.Digest)
	if report.Compression == swf.LZMACompressed && !report.LZMAAvailable {
		fmt.Fprintf(writer, "LZMA:\tnot available in this build\n")
	}
	return writer.Flush()
}

func humanSize(size int64) string {
	if size < 0 {
		return "invalid"
	}
	return humanize.Bytes(uint64(size))
}
