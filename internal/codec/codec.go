// Package codec wraps the supported compression schemes behind a one-shot
// compress/decompress pair. Volumes are compressed whole, one chunk at a
// time; nothing here streams.
package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// DefaultLevel matches the zstd level the tool has always used.
const DefaultLevel = 3

type codec struct {
	extension  string
	compress   func(data []byte, level int) ([]byte, error)
	decompress func(data []byte) ([]byte, error)
}

var available = map[string]codec{
	"zstd": {".zst", compressZstd, decompressZstd},
	"gzip": {".gz", compressGzip, decompressGzip},
	"lz4":  {".lz4", compressLZ4, decompressLZ4},
	"xz":   {".xz", compressXz, decompressXz},
}

// AvailableNames lists the registered codec names, sorted.
func AvailableNames() []string {
	names := make([]string, 0, len(available))
	for name := range available {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension returns the volume filename extension for the named codec.
func Extension(name string) (string, error) {
	c, exists := available[name]
	if !exists {
		return "", fmt.Errorf("unsupported compression codec '%s'", name)
	}
	return c.extension, nil
}

func Compress(name string, data []byte, level int) ([]byte, error) {
	c, exists := available[name]
	if !exists {
		return nil, fmt.Errorf("unsupported compression codec '%s'", name)
	}
	return c.compress(data, level)
}

func Decompress(name string, data []byte) ([]byte, error) {
	c, exists := available[name]
	if !exists {
		return nil, fmt.Errorf("unsupported compression codec '%s'", name)
	}
	return c.decompress(data)
}

func compressZstd(data []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
	)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

func compressGzip(data []byte, level int) ([]byte, error) {
	b := bytes.NewBuffer(make([]byte, 0, len(data)/2))
	w, err := gzip.NewWriterLevel(b, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompressGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()
	return io.ReadAll(r)
}

// lz4 and xz expose no zstd-style level knob worth mapping; the level
// argument is accepted for interface symmetry and ignored.

func compressLZ4(data []byte, _ int) ([]byte, error) {
	b := bytes.NewBuffer(make([]byte, 0, len(data)/2))
	w := lz4.NewWriter(b)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

func compressXz(data []byte, _ int) ([]byte, error) {
	b := bytes.NewBuffer(make([]byte, 0, len(data)/2))
	w, err := xz.NewWriter(b)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompressXz(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
