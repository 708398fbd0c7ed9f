// Package scratch provides a reusable per-frame byte buffer for formatting
// widget labels without allocating a string per call.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// Buffer is single-threaded. Reset it once per frame; strings returned by
// the View methods are valid until the next Reset.
type Buffer struct {
	buf []byte
}

// New returns a buffer with the given initial capacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer length without freeing memory.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

func (b *Buffer) Cap() int { return cap(b.buf) }
func (b *Buffer) Len() int { return len(b.buf) }

// Mark returns a bookmark to later slice the output.
func (b *Buffer) Mark() int { return len(b.buf) }

// StringFrom copies the bytes produced since mark.
func (b *Buffer) StringFrom(mark int) string { return string(b.buf[mark:]) }

// ViewFrom is a zero-copy string over the bytes produced since mark.
// Do not keep it past the next Reset.
func (b *Buffer) ViewFrom(mark int) string {
	s := b.buf[mark:]
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(&s[0], len(s))
}

// ----- Append primitives (chainable) -----

func (b *Buffer) S(s string) *Buffer {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Buffer) C(c byte) *Buffer {
	b.buf = append(b.buf, c)
	return b
}

func (b *Buffer) R(r rune) *Buffer {
	b.buf = utf8.AppendRune(b.buf, r)
	return b
}

// I appends a base-10 integer.
func (b *Buffer) I(v int) *Buffer {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

// F appends a float with prec digits after the decimal point.
func (b *Buffer) F(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

// Hex appends u in lowercase hexadecimal, zero padded to width digits.
func (b *Buffer) Hex(u uint64, width int) *Buffer {
	var tmp [16]byte
	s := strconv.AppendUint(tmp[:0], u, 16)
	for i := len(s); i < width; i++ {
		b.buf = append(b.buf, '0')
	}
	b.buf = append(b.buf, s...)
	return b
}

// Sprintf formats a tiny subset of verbs: %s %d %f (with .prec) %x %%.
// The result is a view valid until the next Reset.
func (b *Buffer) Sprintf(format string, args ...any) string {
	var ai int
	mark := len(b.buf)
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			b.buf = append(b.buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b.buf = append(b.buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			prec, _ = strconv.Atoi(format[start:i])
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		switch format[i] {
		case 's':
			b.buf = append(b.buf, toString(args[ai])...)
		case 'd':
			b.buf = strconv.AppendInt(b.buf, toInt64(args[ai]), 10)
		case 'x':
			b.buf = strconv.AppendUint(b.buf, uint64(toInt64(args[ai])), 16)
		case 'f':
			if prec < 0 {
				prec = 3
			}
			b.buf = strconv.AppendFloat(b.buf, toFloat64(args[ai]), 'f', prec, 64)
		default:
			b.buf = append(b.buf, '%', format[i])
		}
		ai++
	}
	return b.ViewFrom(mark)
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return "<unsupported>"
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
