package chunker

import (
	"strings"

	"golang.org/x/text/encoding"

	"github.com/volsplit/volsplit/internal/textenc"
)

// Locator finds line-ending boundaries in a byte span. The search runs
// over the *decoded* text, never the raw bytes: a double-byte encoding can
// embed a code unit that coincides with a single-byte ending when read
// bytewise. Offsets are reported back in bytes of the original span, as
// the position immediately past a complete occurrence.
type Locator struct {
	Ending string
	Enc    encoding.Encoding

	// WarnDecode, when set, is invoked once per span containing byte
	// sequences invalid for Enc. Decoding proceeds regardless.
	WarnDecode func(span int)
}

func (l *Locator) decode(data []byte) string {
	decoded, irregular := textenc.Decode(l.Enc, data)
	if irregular && l.WarnDecode != nil {
		l.WarnDecode(len(data))
	}
	return decoded
}

// Last returns the byte offset just past the rightmost line-ending
// occurrence in data, or ok == false when none exists.
func (l *Locator) Last(data []byte) (end int, ok bool) {
	if len(data) == 0 {
		return 0, false
	}

	decoded := l.decode(data)
	pos := strings.LastIndex(decoded, l.Ending)
	if pos < 0 {
		return 0, false
	}

	return textenc.EncodedLen(l.Enc, decoded[:pos+len(l.Ending)]), true
}

// FirstFrom returns the byte offset just past the leftmost line-ending
// occurrence whose end lies at or beyond min. When no such occurrence
// exists, ok is false and lastBelow carries the end offset of the
// rightmost occurrence below min (0 when there is none); callers use it
// as a resume point so settled text is not re-scanned.
func (l *Locator) FirstFrom(data []byte, min int) (end int, ok bool, lastBelow int) {
	if len(data) == 0 {
		return 0, false, 0
	}

	decoded := l.decode(data)

	// Walk occurrences left to right, tracking the byte offset
	// incrementally so the overall cost stays linear.
	var bytePos int
	var charPos int
	for {
		idx := strings.Index(decoded[charPos:], l.Ending)
		if idx < 0 {
			return 0, false, lastBelow
		}

		next := charPos + idx + len(l.Ending)
		bytePos += textenc.EncodedLen(l.Enc, decoded[charPos:next])
		charPos = next

		if bytePos >= min {
			return bytePos, true, lastBelow
		}
		lastBelow = bytePos
	}
}
