//go:build !windows
// +build !windows

package volsplit

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func init() {

	preProcessTasks = func(vs *Volsplit) {
		var ru unix.Rusage
		unix.Getrusage(unix.RUSAGE_SELF, &ru) //nolint:errcheck
		sys := &vs.statSummary.SysStats

		// set everything to negative values: we will simply += in postprocessing
		sys.CpuUserNsecs -= unix.TimevalToNsec(ru.Utime)
		sys.CpuSysNsecs -= unix.TimevalToNsec(ru.Stime)
	}

	postProcessTasks = func(vs *Volsplit) {
		var ru unix.Rusage
		unix.Getrusage(unix.RUSAGE_SELF, &ru) //nolint:errcheck

		if runtime.GOOS != "darwin" {
			// anywhere but mac, maxrss is in KiB
			ru.Maxrss *= 1024
		}

		sys := &vs.statSummary.SysStats

		sys.MaxRssBytes = int64(ru.Maxrss)
		sys.CpuUserNsecs += unix.TimevalToNsec(ru.Utime)
		sys.CpuSysNsecs += unix.TimevalToNsec(ru.Stime)
	}
}
