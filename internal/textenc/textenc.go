// Package textenc provides the text encodings a volume splitter can be
// asked to honor, plus the decode/re-encode helpers the boundary search
// is built on. Decoding is always best-effort: undecodable bytes become
// U+FFFD and are reported via a flag, never via an error.
package textenc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

var Available = map[string]encoding.Encoding{
	"UTF-8":    unicode.UTF8,
	"GBK":      simplifiedchinese.GBK,
	"GB18030":  simplifiedchinese.GB18030,
	"UTF-16LE": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-16BE": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Lookup resolves a CLI-supplied encoding name, case-insensitively.
func Lookup(name string) (encoding.Encoding, bool) {
	enc, exists := Available[strings.ToUpper(name)]
	return enc, exists
}

// Decode converts raw input bytes to text. The second return is true when
// the span contained byte sequences invalid for the encoding.
//
// UTF-8 input is passed through verbatim rather than substituted: the
// search routines operate on raw byte indices there, so keeping invalid
// bytes in place preserves exact offsets.
func Decode(enc encoding.Encoding, data []byte) (string, bool) {
	if enc == unicode.UTF8 {
		return string(data), !utf8.Valid(data)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// x/text decoders substitute rather than fail; treat a failure,
		// should one ever surface, as an irregularity too
		return string(decoded), true
	}
	return string(decoded), strings.ContainsRune(string(decoded), utf8.RuneError)
}

// EncodedLen reports how many bytes the given text occupies once encoded
// back into enc. Runes the encoding cannot represent (notably U+FFFD
// introduced by a best-effort decode) are counted via the encoder's
// replacement so the measurement never aborts.
func EncodedLen(enc encoding.Encoding, text string) int {
	if enc == unicode.UTF8 {
		return len(text)
	}

	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return len(out)
	}
	return len(out)
}
