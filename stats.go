package volsplit

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/ipfs/go-qringbuf"

	"github.com/volsplit/volsplit/internal/emitter"
)

type statSummary struct {
	Volumes            []emitter.VolumeStat `json:"volumes"`
	SumRawBytes        int64                `json:"sumRawBytes"`
	SumCompressedBytes int64                `json:"sumCompressedBytes"`
	SysStats           sysStats             `json:"sysStats"`
}

type sysStats struct {
	Ringbuf      qringbuf.Stats `json:"ringbuf"`
	ElapsedNsecs int64          `json:"elapsedNanoseconds"`

	// filled in on unix via rusage deltas
	CpuUserNsecs int64 `json:"cpuUserNanoseconds"`
	CpuSysNsecs  int64 `json:"cpuSysNanoseconds"`
	MaxRssBytes  int64 `json:"maxMemoryUsed"`
}

// recordVolume observes every successful volume write, in index order.
func (vs *Volsplit) recordVolume(st emitter.VolumeStat) {

	ss := &vs.statSummary
	ss.Volumes = append(ss.Volumes, st)
	ss.SumRawBytes += st.SizeRaw
	ss.SumCompressedBytes += st.SizeCompressed

	vs.log.Info("wrote volume %s (%s compressed to %s)",
		st.File,
		humanize.IBytes(uint64(st.SizeRaw)),
		humanize.IBytes(uint64(st.SizeCompressed)),
	)

	if w := vs.cfg.emitters[emManifestJsonl]; w != nil {
		line, err := json.Marshal(st)
		if err == nil {
			_, err = fmt.Fprintf(w, "%s\n", line)
		}
		if err != nil {
			vs.log.Error("emitting '%s' failed: %s", emManifestJsonl, err)
		}
	}
}

// OutputSummary renders the end-of-run statistics to whatever emitters
// are active. Called by the CLI after a successful (or failed) run.
func (vs *Volsplit) OutputSummary() {

	ss := &vs.statSummary

	if w := vs.cfg.emitters[emStatsJsonl]; w != nil {
		if line, err := json.Marshal(ss); err == nil {
			fmt.Fprintf(w, "%s\n", line)
		}
	}

	w := vs.cfg.emitters[emStatsText]
	if w == nil {
		return
	}

	elapsedSecs := float64(ss.SysStats.ElapsedNsecs) / 1e9

	fmt.Fprintf(w, "\nSplitting summary:\n")
	fmt.Fprintf(w, "- volumes written: %d\n", len(ss.Volumes))
	fmt.Fprintf(w, "- uncompressed: %s\n", humanize.IBytes(uint64(ss.SumRawBytes)))
	if ss.SumRawBytes > 0 {
		fmt.Fprintf(w, "- compressed: %s (%.1f%%)\n",
			humanize.IBytes(uint64(ss.SumCompressedBytes)),
			float64(ss.SumCompressedBytes)*100/float64(ss.SumRawBytes),
		)
	}
	fmt.Fprintf(w, "- elapsed: %.2f seconds\n", elapsedSecs)
	if elapsedSecs > 0 {
		fmt.Fprintf(w, "- throughput: %.2f MiB/s\n",
			float64(ss.SumRawBytes)/(1024*1024)/elapsedSecs,
		)
	}
	if ss.SysStats.MaxRssBytes > 0 {
		fmt.Fprintf(w, "- peak memory: %s\n", humanize.IBytes(uint64(ss.SysStats.MaxRssBytes)))
	}
}
