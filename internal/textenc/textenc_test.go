package textenc

import (
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

func TestLookupCaseInsensitive(t *testing.T) {

	for _, name := range []string{"UTF-8", "utf-8", "Utf-8", "gbk", "GB18030", "utf-16le", "UTF-16BE"} {
		if _, exists := Lookup(name); !exists {
			t.Errorf("Lookup(%q) found nothing", name)
		}
	}

	for _, name := range []string{"", "latin1", "utf8", "UTF-32"} {
		if _, exists := Lookup(name); exists {
			t.Errorf("Lookup(%q) unexpectedly succeeded", name)
		}
	}
}

func TestDecodePassthroughUTF8(t *testing.T) {

	text, irregular := Decode(unicode.UTF8, []byte("héllo\n"))
	if text != "héllo\n" || irregular {
		t.Errorf("Decode = (%q, %v), want (%q, false)", text, irregular, "héllo\n")
	}

	if _, irregular := Decode(unicode.UTF8, []byte{0x61, 0xFF, 0x62}); !irregular {
		t.Error("invalid UTF-8 not flagged as irregular")
	}
}

func TestDecodeGBK(t *testing.T) {

	raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("你好\n"))
	if err != nil {
		t.Fatal(err)
	}

	text, irregular := Decode(simplifiedchinese.GBK, raw)
	if text != "你好\n" || irregular {
		t.Errorf("Decode = (%q, %v), want (%q, false)", text, irregular, "你好\n")
	}

	// 0xFF is not a valid GBK lead byte; decode must still return text
	text, irregular = Decode(simplifiedchinese.GBK, append(raw, 0xFF))
	if !irregular {
		t.Error("invalid GBK byte not flagged as irregular")
	}
	if len(text) == 0 {
		t.Error("best-effort decode returned nothing")
	}
}

func TestEncodedLen(t *testing.T) {

	if got := EncodedLen(unicode.UTF8, "你好\n"); got != len("你好\n") {
		t.Errorf("UTF-8 EncodedLen = %d, want %d", got, len("你好\n"))
	}

	// two GBK code units plus the newline
	if got := EncodedLen(simplifiedchinese.GBK, "你好\n"); got != 5 {
		t.Errorf("GBK EncodedLen = %d, want 5", got)
	}

	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	if got := EncodedLen(utf16le, "a\n"); got != 4 {
		t.Errorf("UTF-16LE EncodedLen = %d, want 4", got)
	}
}
