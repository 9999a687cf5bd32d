package main

import (
	"fmt"
	"log"
	"os"

	volsplit "github.com/volsplit/volsplit"
	"github.com/volsplit/volsplit/internal/util/stream"
)

func main() {

	// Parse CLI and initialize everything
	// On configuration errors it prints usage and exits on its own
	vs := volsplit.NewVolsplitFromArgv(os.Args)

	var input *os.File
	if vs.InputPath() == "-" {
		input = os.Stdin
		if stream.IsTTY(input) {
			fmt.Fprint(
				os.Stderr,
				"------\nYou seem to be feeding data straight from a terminal, an odd choice...\nNevertheless will proceed to read until EOF ( Ctrl+D )\n------\n",
			)
		}
	} else {
		var err error
		if input, err = os.Open(vs.InputPath()); err != nil {
			log.Fatalf("opening '%s' failed: %s", vs.InputPath(), err)
		}
	}

	if inStat, statErr := input.Stat(); statErr != nil {
		log.Fatalf("unexpected error stat()ing input: %s", statErr)
	} else if !stream.IsTTY(input) {
		// An optimization returns os.ErrInvalid when it can't be applied to the file type
		for _, opt := range stream.ReadOptimizations {
			if err := opt.Action(input, inStat); err != nil && err != os.ErrInvalid {
				log.Printf("failed to apply read optimization hint '%s' to input: %s\n", opt.Name, err)
			}
		}
	}

	if err := vs.ProcessReader(input); err != nil {
		log.Fatalf("unexpected error processing '%s': %s", vs.InputPath(), err)
	}

	vs.OutputSummary()
}
