package constants

import (
	"os"
	"strconv"
)

const (
	// Defaults mirroring the CLI positional arguments
	DefaultChunkSize  = 100 * 1024 * 1024
	DefaultLineEnding = "\n"
	DefaultEncoding   = "UTF-8"

	// Stream driver tuning
	DefaultReadBufferSize = 8 * 1024 * 1024
	RingBufferSectorSize  = 64 * 1024

	// Width of the numeric suffix in volume names: <prefix>.NNN.<ext>
	VolumeNumberWidth = 3
)

var LongTests bool

func init() {
	LongTests = isTruthy("TEST_VOLSPLIT_LONG")
}

func isTruthy(varname string) bool {
	envStr := os.Getenv(varname)
	if envStr != "" {
		if num, err := strconv.ParseUint(envStr, 10, 64); err != nil || num != 0 {
			return true
		}
	}
	return false
}
