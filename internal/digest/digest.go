package digest

import (
	"encoding/hex"
	"hash"
	"sort"

	sha256 "github.com/minio/sha256-simd"
	"github.com/twmb/murmur3"
	"golang.org/x/crypto/blake2b"
)

// AvailableHashers maps --hash names to constructors. A nil constructor
// ("none") disables digesting entirely.
var AvailableHashers = map[string]func() hash.Hash{
	"none":   nil,
	"sha256": sha256.New,
	"blake2b-256": func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	},
	"murmur3-128": func() hash.Hash {
		return murmur3.New128()
	},
}

func AvailableNames() []string {
	names := make([]string, 0, len(AvailableHashers))
	for name := range AvailableHashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sum returns the hex digest of data under the named hasher, or the empty
// string for "none". The name must have been validated beforehand.
func Sum(name string, data []byte) string {
	mk := AvailableHashers[name]
	if mk == nil {
		return ""
	}
	h := mk()
	h.Write(data) //nolint:errcheck
	return hex.EncodeToString(h.Sum(nil))
}
