package codec

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundTripAllCodecs(t *testing.T) {

	payload := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 512))

	for _, name := range AvailableNames() {
		compressed, err := Compress(name, payload, DefaultLevel)
		if err != nil {
			t.Fatalf("%s: compression failed: %s", name, err)
		}
		if len(compressed) >= len(payload) {
			t.Errorf("%s: compressible payload did not shrink (%d >= %d)", name, len(compressed), len(payload))
		}

		restored, err := Decompress(name, compressed)
		if err != nil {
			t.Fatalf("%s: decompression failed: %s", name, err)
		}
		if !bytes.Equal(restored, payload) {
			t.Errorf("%s: round trip corrupted data", name)
		}
	}
}

func TestExtensions(t *testing.T) {

	extTests := map[string]string{
		"zstd": ".zst",
		"gzip": ".gz",
		"lz4":  ".lz4",
		"xz":   ".xz",
	}
	for name, want := range extTests {
		got, err := Extension(name)
		if err != nil {
			t.Fatalf("Extension(%q) failed: %s", name, err)
		}
		if got != want {
			t.Errorf("Extension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestUnknownCodec(t *testing.T) {

	if _, err := Extension("snappy"); err == nil {
		t.Error("Extension accepted an unregistered codec")
	}
	if _, err := Compress("snappy", []byte("x"), DefaultLevel); err == nil {
		t.Error("Compress accepted an unregistered codec")
	}
	if _, err := Decompress("snappy", []byte("x")); err == nil {
		t.Error("Decompress accepted an unregistered codec")
	}
}

func TestEmptyPayload(t *testing.T) {

	for _, name := range AvailableNames() {
		compressed, err := Compress(name, nil, DefaultLevel)
		if err != nil {
			t.Fatalf("%s: compressing empty payload failed: %s", name, err)
		}
		restored, err := Decompress(name, compressed)
		if err != nil {
			t.Fatalf("%s: decompressing empty payload failed: %s", name, err)
		}
		if len(restored) != 0 {
			t.Errorf("%s: empty round trip produced %d bytes", name, len(restored))
		}
	}
}
