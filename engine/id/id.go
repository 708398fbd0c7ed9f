// Package id derives stable widget and window keys from call-site labels.
package id

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID is an opaque 64-bit key. Compared by value, never owned.
type ID uint64

// None is the empty register value.
const None ID = 0

// Marker separates the visible part of a label from its identity source.
const Marker = "##"

const golden = 0x9e3779b97f4a7c15

// Hash returns the fixed-seed 64-bit hash of label.
func Hash(label string) ID {
	return ID(xxhash.Sum64String(label))
}

// Combine scopes child under scope. Combine(a, b) != Combine(b, a).
func Combine(scope, child ID) ID {
	s, c := uint64(scope), uint64(child)
	h := s ^ (c + golden + (s << 6) + (s >> 2))
	return ID(bits.RotateLeft64(h, 31) * golden)
}

// SplitLabel splits raw on the first "##". Without a marker the whole
// string is both the display text and the identity source.
func SplitLabel(raw string) (display, source string) {
	if i := strings.Index(raw, Marker); i >= 0 {
		return raw[:i], raw[i+len(Marker):]
	}
	return raw, raw
}

// FromLabel splits raw and hashes its identity source under scope.
func FromLabel(scope ID, raw string) (string, ID) {
	display, source := SplitLabel(raw)
	return display, Combine(scope, Hash(source))
}

// FromInt scopes an integer key, used for list rows.
func FromInt(scope ID, n int) ID {
	var buf [20]byte
	return Combine(scope, ID(xxhash.Sum64(strconv.AppendInt(buf[:0], int64(n), 10))))
}

func (i ID) String() string {
	return "#" + strconv.FormatUint(uint64(i), 16)
}
