// Package volsplit shards a large text file into line-aligned,
// independently compressed, numbered volumes. Chunks never break inside a
// line: boundaries are located in the decoded text of the configured
// encoding, and a chunk only grows past its size threshold when a single
// line does.
package volsplit

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ipfs/go-qringbuf"

	"github.com/volsplit/volsplit/internal/chunker"
	"github.com/volsplit/volsplit/internal/constants"
	"github.com/volsplit/volsplit/internal/digest"
	"github.com/volsplit/volsplit/internal/emitter"
	"github.com/volsplit/volsplit/internal/logging"
	"github.com/volsplit/volsplit/internal/util/argparser"
)

type Volsplit struct {
	cfg         config
	log         *logging.Logger
	statSummary statSummary

	loc *chunker.Locator
	acc *chunker.Accumulator
	em  *emitter.Emitter
	qrb *qringbuf.QuantizedRingBuffer
}

func NewVolsplit() *Volsplit {
	return &Volsplit{
		cfg: defaultConfig(),
	}
}

// NewVolsplitWithWriters parses argv and assembles the full pipeline.
// Diagnostics and informational logging go to stderr; stdout is only ever
// used by emitters explicitly pointed at it. All argument problems are
// accumulated and returned together.
func NewVolsplitWithWriters(stderr, stdout io.Writer, argv []string) (vs *Volsplit, argErrs []error) {

	vs = NewVolsplit()
	vs.log = logging.NewLogger(stderr)

	cfg := &vs.cfg
	cfg.initArgvParser()

	positionals, argErrs := argparser.Parse(argv, cfg.optSet)

	if cfg.Help {
		return vs, nil
	}
	if cfg.Quiet {
		vs.log.Quiet()
	}

	argErrs = append(argErrs, cfg.resolveArgs(positionals)...)
	argErrs = append(argErrs, vs.setupEmitters(stderr, stdout)...)
	argErrs = append(argErrs, vs.setupSplitter()...)

	if len(argErrs) > 0 {
		return vs, argErrs
	}
	return vs, nil
}

// NewVolsplitFromArgv is the CLI entrypoint constructor: on --help it
// prints usage and exits 0, on configuration errors it reports every
// problem, prints usage and exits 2 without having touched any output.
func NewVolsplitFromArgv(argv []string) *Volsplit {

	if argParseErrOut == nil {
		argParseErrOut = os.Stderr
	}

	vs, argErrs := NewVolsplitWithWriters(os.Stderr, os.Stdout, argv)

	if vs.cfg.Help {
		vs.cfg.printUsage(argParseErrOut)
		os.Exit(0)
	}

	if len(argErrs) > 0 {
		for _, err := range argErrs {
			fmt.Fprintf(argParseErrOut, "error: %s\n", err)
		}
		fmt.Fprint(argParseErrOut, "\n")
		vs.cfg.printUsage(argParseErrOut)
		os.Exit(2)
	}

	return vs
}

// setupSplitter validates the codec/digest/buffer options and wires the
// locator, accumulator and emitter together.
func (vs *Volsplit) setupSplitter() (argErrs []error) {

	cfg := &vs.cfg

	// nothing to wire when the positional grammar already failed
	if cfg.enc == nil {
		return
	}

	if _, exists := digest.AvailableHashers[cfg.hashFunc]; !exists {
		argErrs = append(argErrs, fmt.Errorf(
			"digest '%s' requested via '--hash=algname' is not valid", cfg.hashFunc,
		))
	}

	switch cfg.codecName {
	case "zstd":
		if cfg.CompressLevel < 1 || cfg.CompressLevel > 22 {
			argErrs = append(argErrs, fmt.Errorf("--compress-level '%d' out of zstd bounds [1:22]", cfg.CompressLevel))
		}
	case "gzip":
		if cfg.CompressLevel < 1 || cfg.CompressLevel > 9 {
			argErrs = append(argErrs, fmt.Errorf("--compress-level '%d' out of gzip bounds [1:9]", cfg.CompressLevel))
		}
	}

	if cfg.ReadBufferSize < 4096 {
		argErrs = append(argErrs, fmt.Errorf("--read-buffer-size must be at least 4096 bytes"))
	}
	if cfg.RingBufferSize < 2*cfg.ReadBufferSize {
		argErrs = append(argErrs, fmt.Errorf(
			"--ring-buffer-size '%d' must be at least twice the read buffer size '%d'",
			cfg.RingBufferSize, cfg.ReadBufferSize,
		))
	}
	if cfg.RingBufferSize%constants.RingBufferSectorSize != 0 {
		argErrs = append(argErrs, fmt.Errorf(
			"--ring-buffer-size '%d' must be a multiple of the %d byte buffer sector",
			cfg.RingBufferSize, constants.RingBufferSectorSize,
		))
	}

	em, err := emitter.New(cfg.outputPrefix, cfg.codecName, cfg.CompressLevel, cfg.hashFunc)
	if err != nil {
		argErrs = append(argErrs, err)
	}

	if len(argErrs) > 0 {
		return
	}

	em.OnVolume = vs.recordVolume
	vs.em = em

	vs.loc = &chunker.Locator{
		Ending: cfg.lineEnding,
		Enc:    cfg.enc,
		WarnDecode: func(span int) {
			vs.log.Warn("invalid byte sequences for encoding %s within a %d byte span", cfg.encodingName, span)
		},
	}
	vs.acc = chunker.NewAccumulator(cfg.chunkSize, vs.loc, vs.em.Emit)

	return
}

// InputPath exposes the resolved input argument; '-' means stdIN.
func (vs *Volsplit) InputPath() string {
	return vs.cfg.inputPath
}

func (vs *Volsplit) logBanner() {
	vs.log.Info("encoding: %s", vs.cfg.encodingName)
	vs.log.Info("line ending: %s", strconv.Quote(vs.cfg.lineEnding))
	vs.log.Info("chunk size: %d MiB", vs.cfg.chunkSize/(1024*1024))
}
