package volsplit

import (
	"github.com/pborman/getopt/v2"
	"golang.org/x/text/encoding"

	"github.com/volsplit/volsplit/internal/codec"
	"github.com/volsplit/volsplit/internal/constants"
)

type config struct {
	optSet *getopt.Set

	// where manifest/stats lines go
	emitters emissionTargets

	//
	// Bulk of CLI options definition starts here, the rest further down in initArgvParser()
	//

	Help  bool `getopt:"-h --help Display help"`
	Quiet bool `getopt:"--quiet   Suppress informational output, keep warnings and errors"`

	CompressLevel  int `getopt:"--compress-level=integer Compression level where the codec supports one (zstd 1:22, gzip 1:9). Default:"`
	ReadBufferSize int `getopt:"--read-buffer-size=bytes Size of each read from the input stream. Default:"`
	RingBufferSize int `getopt:"--ring-buffer-size=bytes Size of the ring buffer backing the stream driver, at least twice the read buffer. Default:"`

	emittersStdErr []string // Emitter spec: option/helptext in initArgvParser()
	emittersStdOut []string // Emitter spec: option/helptext in initArgvParser()

	codecName string // Codec: option/helptext in initArgvParser()
	hashFunc  string // Per-volume digest: option/helptext in initArgvParser()

	// resolved from the positional arguments
	inputPath    string
	outputPrefix string
	chunkSize    int
	lineEnding   string
	encodingName string
	enc          encoding.Encoding
}

func defaultConfig() config {
	return config{
		CompressLevel:  codec.DefaultLevel,
		ReadBufferSize: constants.DefaultReadBufferSize,
		RingBufferSize: 4 * constants.DefaultReadBufferSize,
		codecName:      "zstd",
		hashFunc:       "none",
		chunkSize:      constants.DefaultChunkSize,
		lineEnding:     constants.DefaultLineEnding,
		encodingName:   constants.DefaultEncoding,
	}
}
