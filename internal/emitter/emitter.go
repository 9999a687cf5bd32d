// Package emitter turns finalized chunks into numbered compressed volume
// files. Failure to compress or write is fatal for the run: a truncated or
// misnumbered volume set is worse than a loud stop.
package emitter

import (
	"fmt"
	"os"

	"github.com/volsplit/volsplit/internal/codec"
	"github.com/volsplit/volsplit/internal/constants"
	"github.com/volsplit/volsplit/internal/digest"
)

// VolumeStat describes one written volume.
type VolumeStat struct {
	Index          int    `json:"index"`
	File           string `json:"file"`
	SizeRaw        int64  `json:"sizeRaw"`
	SizeCompressed int64  `json:"sizeCompressed"`
	Digest         string `json:"digest,omitempty"`
}

type Emitter struct {
	prefix    string
	codecName string
	level     int
	hasher    string
	extension string

	// OnVolume observes every successful write, in index order.
	OnVolume func(VolumeStat)

	index int
}

func New(prefix, codecName string, level int, hasher string) (*Emitter, error) {
	ext, err := codec.Extension(codecName)
	if err != nil {
		return nil, err
	}
	return &Emitter{
		prefix:    prefix,
		codecName: codecName,
		level:     level,
		hasher:    hasher,
		extension: ext,
	}, nil
}

// Emit compresses chunk and writes it as the next volume. Indices start at
// 1 and are zero-padded to a fixed width so names sort by number.
func (e *Emitter) Emit(chunk []byte) error {
	e.index++
	name := fmt.Sprintf("%s.%0*d%s",
		e.prefix,
		constants.VolumeNumberWidth,
		e.index,
		e.extension,
	)

	compressed, err := codec.Compress(e.codecName, chunk, e.level)
	if err != nil {
		return fmt.Errorf("compressing volume %d failed: %s", e.index, err)
	}

	if err := os.WriteFile(name, compressed, 0644); err != nil {
		return fmt.Errorf("writing volume %d failed: %s", e.index, err)
	}

	if e.OnVolume != nil {
		e.OnVolume(VolumeStat{
			Index:          e.index,
			File:           name,
			SizeRaw:        int64(len(chunk)),
			SizeCompressed: int64(len(compressed)),
			Digest:         digest.Sum(e.hasher, chunk),
		})
	}

	return nil
}

// Count reports how many volumes have been written so far.
func (e *Emitter) Count() int {
	return e.index
}
