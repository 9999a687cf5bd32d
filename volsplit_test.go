package volsplit

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/volsplit/volsplit/internal/codec"
	"github.com/volsplit/volsplit/internal/constants"
)

func TestParseLineEnding(t *testing.T) {

	endingTests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"LF", "\n", false},
		{"lf", "\n", false},
		{"CRLF", "\r\n", false},
		{"cr", "\r", false},
		{"custom:|", "|", false},
		{`custom:\r\n`, "\r\n", false},
		// the custom: prefix is case-insensitive, the literal is not
		{"CUSTOM:AB", "AB", false},
		{"custom:", "", true},
		{"bogus", "", true},
		{"", "", true},
	}

	for _, tt := range endingTests {
		got, err := parseLineEnding(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLineEnding(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseLineEnding(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

func TestArgvHelpShortCircuits(t *testing.T) {

	var errOut, out bytes.Buffer
	vs, argErrs := NewVolsplitWithWriters(&errOut, &out, []string{"volsplit", "-h"})
	if len(argErrs) != 0 {
		t.Fatalf("help request produced errors: %v", argErrs)
	}
	if !vs.cfg.Help {
		t.Error("help flag not recorded")
	}
}

func TestArgvErrorsAccumulate(t *testing.T) {

	var errOut, out bytes.Buffer
	_, argErrs := NewVolsplitWithWriters(&errOut, &out, []string{
		"volsplit", "in.txt", "out", "zero", "LF", "KOI8-R",
	})

	// both the chunk size and the encoding are bad, both must be reported
	if len(argErrs) < 2 {
		t.Fatalf("got %d errors, want at least 2: %v", len(argErrs), argErrs)
	}
}

func TestArgvRequiresPositionals(t *testing.T) {

	var errOut, out bytes.Buffer
	_, argErrs := NewVolsplitWithWriters(&errOut, &out, []string{"volsplit"})
	if len(argErrs) == 0 {
		t.Fatal("missing positionals not rejected")
	}
}

func TestArgvValidatesBufferSizes(t *testing.T) {

	var errOut, out bytes.Buffer
	_, argErrs := NewVolsplitWithWriters(&errOut, &out, []string{
		"volsplit", "--read-buffer-size=65536", "--ring-buffer-size=65536",
		"in.txt", "out",
	})
	if len(argErrs) == 0 {
		t.Fatal("undersized ring buffer not rejected")
	}
}

func TestArgvValidatesCompressLevel(t *testing.T) {

	var errOut, out bytes.Buffer
	_, argErrs := NewVolsplitWithWriters(&errOut, &out, []string{
		"volsplit", "--codec=gzip", "--compress-level=22", "in.txt", "out",
	})
	if len(argErrs) == 0 {
		t.Fatal("out-of-range gzip level not rejected")
	}
}

func testCorpus(t *testing.T, dir string) (string, []byte) {
	t.Helper()

	corpusSize := 2500 * 1024
	if constants.LongTests {
		corpusSize = 120 * 1024 * 1024
	}

	var input bytes.Buffer
	for i := 0; input.Len() < corpusSize; i++ {
		fmt.Fprintf(&input, "line %08d %s\n", i, strings.Repeat("payload ", i%16))
	}

	inputPath := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(inputPath, input.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return inputPath, input.Bytes()
}

func runSplit(t *testing.T, argv []string) *Volsplit {
	t.Helper()

	var errOut, out bytes.Buffer
	vs, argErrs := NewVolsplitWithWriters(&errOut, &out, argv)
	if len(argErrs) > 0 {
		t.Fatalf("argv rejected: %v", argErrs)
	}

	fh, err := os.Open(vs.InputPath())
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()

	if err := vs.ProcessReader(fh); err != nil {
		t.Fatal(err)
	}
	return vs
}

func TestEndToEndSplitAndReassemble(t *testing.T) {

	dir := t.TempDir()
	inputPath, original := testCorpus(t, dir)
	prefix := filepath.Join(dir, "vol")

	vs := runSplit(t, []string{
		"volsplit", "--quiet", "--emit-stderr=none", "--hash=sha256",
		"--read-buffer-size=65536", "--ring-buffer-size=262144",
		inputPath, prefix, "1", "LF", "UTF-8",
	})

	vols := vs.statSummary.Volumes
	if len(vols) < 2 {
		t.Fatalf("a 2.5 MiB corpus split at 1 MiB yielded %d volumes", len(vols))
	}

	var rejoined []byte
	for i, st := range vols {
		compressed, err := os.ReadFile(st.File)
		if err != nil {
			t.Fatal(err)
		}
		restored, err := codec.Decompress("zstd", compressed)
		if err != nil {
			t.Fatalf("volume %d: %s", st.Index, err)
		}

		if wantDigest := fmt.Sprintf("%x", sha256.Sum256(restored)); st.Digest != wantDigest {
			t.Errorf("volume %d digest mismatch", st.Index)
		}
		if i < len(vols)-1 {
			if len(restored) < 1<<20 {
				t.Errorf("non-final volume %d holds %d uncompressed bytes, below the 1 MiB threshold", st.Index, len(restored))
			}
			if !bytes.HasSuffix(restored, []byte("\n")) {
				t.Errorf("volume %d does not end at a line boundary", st.Index)
			}
		}

		rejoined = append(rejoined, restored...)
	}

	if sha256.Sum256(rejoined) != sha256.Sum256(original) {
		t.Fatal("concatenated volumes do not reproduce the input")
	}
}

// The volume set must not depend on how the input happens to arrive from
// the reader: different read buffer sizes chop the stream into different
// spans, yet every cut lands in the same place.
func TestDeterministicAcrossReadSizes(t *testing.T) {

	dir := t.TempDir()
	inputPath, _ := testCorpus(t, dir)

	volumeSums := func(prefix, readBuf, ringBuf string) []string {
		vs := runSplit(t, []string{
			"volsplit", "--quiet", "--emit-stderr=none",
			"--read-buffer-size=" + readBuf, "--ring-buffer-size=" + ringBuf,
			inputPath, prefix, "1", "LF", "UTF-8",
		})

		var sums []string
		for _, st := range vs.statSummary.Volumes {
			data, err := os.ReadFile(st.File)
			if err != nil {
				t.Fatal(err)
			}
			sums = append(sums, fmt.Sprintf("%x", sha256.Sum256(data)))
		}
		return sums
	}

	coarse := volumeSums(filepath.Join(dir, "coarse"), "262144", "1048576")
	fine := volumeSums(filepath.Join(dir, "fine"), "65536", "262144")

	if len(coarse) != len(fine) {
		t.Fatalf("volume counts differ across read sizes: %d vs %d", len(coarse), len(fine))
	}
	for i := range coarse {
		if coarse[i] != fine[i] {
			t.Errorf("volume %03d differs across read sizes", i+1)
		}
	}
}

func TestEmptyInputYieldsNoVolumes(t *testing.T) {

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(inputPath, nil, 0644); err != nil {
		t.Fatal(err)
	}

	vs := runSplit(t, []string{
		"volsplit", "--quiet", "--emit-stderr=none",
		"--read-buffer-size=65536", "--ring-buffer-size=262144",
		inputPath, filepath.Join(dir, "vol"),
	})

	if n := len(vs.statSummary.Volumes); n != 0 {
		t.Fatalf("empty input produced %d volumes", n)
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, "vol.*")); len(matches) != 0 {
		t.Fatalf("stray volume files written: %v", matches)
	}
}
