package volsplit

import (
	"fmt"
	"io"
	"time"

	"github.com/ipfs/go-qringbuf"

	"github.com/volsplit/volsplit/internal/constants"
)

var preProcessTasks, postProcessTasks func(vs *Volsplit)

// ProcessReader drives the whole split: the input is pulled through the
// ring buffer in read-buffer-sized regions, each region is handed to the
// accumulator, and whatever is left at EOF is flushed as the final volume.
// Everything is sequential; the cut point of a chunk depends on having
// read and scanned its bytes.
func (vs *Volsplit) ProcessReader(inputReader io.Reader) (err error) {

	var t0 time.Time

	defer func() {
		if postProcessTasks != nil {
			postProcessTasks(vs)
		}
		vs.statSummary.SysStats.ElapsedNsecs = time.Since(t0).Nanoseconds()
		vs.qrb = nil

		if err != nil {
			err = fmt.Errorf(
				"failure after %d bytes were taken in with %d bytes still unemitted: %s",
				vs.statSummary.SumRawBytes+int64(vs.acc.Pending()),
				vs.acc.Pending(),
				err,
			)
		}
	}()

	if preProcessTasks != nil {
		preProcessTasks(vs)
	}
	t0 = time.Now()

	vs.logBanner()

	vs.qrb, err = qringbuf.NewFromReader(inputReader, qringbuf.Config{
		MinRegion:  vs.cfg.ReadBufferSize,
		MaxCopy:    vs.cfg.ReadBufferSize,
		BufferSize: vs.cfg.RingBufferSize,
		SectorSize: constants.RingBufferSectorSize,
		Stats:      &vs.statSummary.SysStats.Ringbuf,
	})
	if err != nil {
		return
	}

	if err = vs.qrb.StartFill(0); err != nil {
		return
	}

	// read() syscalls happen only within the qrb collector
	for {
		workRegion, readErr := vs.qrb.NextRegion(0)

		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		if workRegion == nil {
			break
		}

		// the accumulator copies what it keeps, the region is not retained
		if err = vs.acc.Append(workRegion.Bytes()); err != nil {
			return
		}

		if readErr == io.EOF {
			break
		}
	}

	return vs.acc.Flush()
}
