package volsplit

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/pborman/getopt/v2"
	"github.com/pborman/options"

	"github.com/volsplit/volsplit/internal/codec"
	"github.com/volsplit/volsplit/internal/constants"
	"github.com/volsplit/volsplit/internal/digest"
	"github.com/volsplit/volsplit/internal/textenc"
)

type emissionTargets map[string]io.Writer

const (
	emNone          = "none"
	emStatsText     = "stats-text"
	emStatsJsonl    = "stats-jsonl"
	emManifestJsonl = "manifest-jsonl"
)

// where the CLI initial error messages go
var argParseErrOut io.Writer

func (cfg *config) printUsage(out io.Writer) {
	cfg.optSet.PrintUsage(out)
	fmt.Fprintf(out, `
Positional arguments:
  input_file      Text file to split, '-' reads stdIN
  output_prefix   Volumes are written as <output_prefix>.NNN.<ext>
  chunk_size_mb   Uncompressed megabytes a volume accumulates before it is
                  cut at a line boundary. Default: %d
  line_ending     LF (\n), CRLF (\r\n), CR (\r), or custom:<literal> where
                  <literal> honors \n and \r escapes. Default: LF
  encoding        Text encoding for boundary detection, one of: %s.
                  Default: %s

`,
		constants.DefaultChunkSize/(1024*1024),
		strings.Join(availableEncodingNames(), ", "),
		constants.DefaultEncoding,
	)
}

func (cfg *config) initArgvParser() {
	// The default documented way of using pborman/options is to muck with globals
	// Operate over objects instead, allowing us to re-parse argv multiple times
	o := getopt.New()
	if err := options.RegisterSet("", cfg, o); err != nil {
		log.Fatalf("option set registration failed: %s", err)
	}
	cfg.optSet = o

	o.SetParameters("<input_file> <output_prefix> [chunk_size_mb] [line_ending] [encoding]")

	// Several options have the help-text assembled programmatically
	o.FlagLong(&cfg.codecName, "codec", 0,
		"Compression codec to apply per volume, one of: "+strings.Join(codec.AvailableNames(), ", ")+". Default: "+cfg.codecName,
		"name",
	)
	o.FlagLong(&cfg.hashFunc, "hash", 0,
		"Digest of each volume's uncompressed content, one of: "+strings.Join(digest.AvailableNames(), ", ")+". Default: "+cfg.hashFunc,
		"algname",
	)
	o.FlagLong(&cfg.emittersStdErr, "emit-stderr", 0, fmt.Sprintf(
		"One or more emitters to activate on stdERR. Available emitters are %s. Default: %s",
		strings.Join(availableEmitterNames(), ", "),
		emStatsText,
	), "comma,sep,emitters")
	o.FlagLong(&cfg.emittersStdOut, "emit-stdout", 0,
		"One or more emitters to activate on stdOUT. Available emitters same as above. Default: "+emNone,
		"comma,sep,emitters",
	)
}

func availableEmitterNames() []string {
	return []string{emNone, emStatsText, emStatsJsonl, emManifestJsonl}
}

func availableEncodingNames() (names []string) {
	for name := range textenc.Available {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// resolveArgs applies the positional grammar over whatever getopt left
// unconsumed.
func (cfg *config) resolveArgs(positionals []string) (argErrs []error) {

	if len(positionals) < 2 {
		return []error{fmt.Errorf("an input file and an output prefix are required")}
	}
	if len(positionals) > 5 {
		argErrs = append(argErrs, fmt.Errorf(
			"unexpected positional parameter(s): %s...",
			positionals[5],
		))
	}

	cfg.inputPath = positionals[0]
	cfg.outputPrefix = positionals[1]

	if len(positionals) >= 3 {
		mb, err := strconv.Atoi(positionals[2])
		if err != nil || mb < 1 {
			argErrs = append(argErrs, fmt.Errorf(
				"invalid chunk size '%s': must be a positive integer amount of megabytes",
				positionals[2],
			))
		} else {
			cfg.chunkSize = mb * 1024 * 1024
		}
	}

	if len(positionals) >= 4 {
		ending, err := parseLineEnding(positionals[3])
		if err != nil {
			argErrs = append(argErrs, err)
		} else {
			cfg.lineEnding = ending
		}
	}

	if len(positionals) >= 5 {
		cfg.encodingName = strings.ToUpper(positionals[4])
	}
	enc, exists := textenc.Lookup(cfg.encodingName)
	if !exists {
		argErrs = append(argErrs, fmt.Errorf(
			"unsupported encoding '%s'. Available encodings are: %s",
			cfg.encodingName,
			strings.Join(availableEncodingNames(), ", "),
		))
	} else {
		cfg.enc = enc
	}

	return
}

var customEscapes = strings.NewReplacer(`\n`, "\n", `\r`, "\r")

func parseLineEnding(arg string) (string, error) {
	switch strings.ToUpper(arg) {
	case "LF":
		return "\n", nil
	case "CRLF":
		return "\r\n", nil
	case "CR":
		return "\r", nil
	}

	// prefix match is case-insensitive, the literal itself is taken verbatim
	if len(arg) >= len("custom:") && strings.EqualFold(arg[:len("custom:")], "custom:") {
		ending := customEscapes.Replace(arg[len("custom:"):])
		if ending == "" {
			return "", fmt.Errorf("custom line ending must not be empty")
		}
		return ending, nil
	}

	return "", fmt.Errorf(
		"invalid line ending option '%s': use LF, CRLF, CR or custom:<literal>",
		arg,
	)
}

func (vs *Volsplit) setupEmitters(stderr, stdout io.Writer) (argErrs []error) {

	cfg := &vs.cfg
	cfg.emitters = emissionTargets{
		emNone:          nil,
		emStatsText:     nil,
		emStatsJsonl:    nil,
		emManifestJsonl: nil,
	}

	if !cfg.optSet.IsSet("emit-stderr") {
		cfg.emittersStdErr = []string{emStatsText}
	}

	assign := func(optName string, requested []string, target io.Writer) map[string]bool {
		active := make(map[string]bool, len(requested))
		for _, s := range requested {
			active[s] = true
			if val, exists := cfg.emitters[s]; !exists {
				argErrs = append(argErrs, fmt.Errorf(
					"invalid emitter '%s' specified for --%s. Available emitters are: %s",
					s,
					optName,
					strings.Join(availableEmitterNames(), ", "),
				))
			} else if s == emNone {
				continue
			} else if val != nil {
				argErrs = append(argErrs, fmt.Errorf("emitter '%s' specified more than once", s))
			} else {
				cfg.emitters[s] = target
			}
		}
		return active
	}

	activeStderr := assign("emit-stderr", cfg.emittersStdErr, stderr)
	activeStdout := assign("emit-stdout", cfg.emittersStdOut, stdout)

	if activeStderr[emNone] && len(activeStderr) > 1 {
		argErrs = append(argErrs, fmt.Errorf(
			"when specified, emitter '%s' must be the sole argument to --emit-stderr", emNone,
		))
	}
	if activeStdout[emNone] && len(activeStdout) > 1 {
		argErrs = append(argErrs, fmt.Errorf(
			"when specified, emitter '%s' must be the sole argument to --emit-stdout", emNone,
		))
	}

	return
}
