package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// Package-level reusable buffer (single-threaded usage). Initialize once
// with Init(capacity), Reset() every frame. Per-frame UI labels are built
// here so steady-state frames don't allocate.
var buf []byte

// Init sets up the global scratch buffer. Call once at startup.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1024
	}
	buf = make([]byte, 0, capacity)
}

// Reset clears the buffer length without freeing memory. Call once per
// frame, before building UI text.
func Reset() { buf = buf[:0] }

func Cap() int { return cap(buf) }
func Len() int { return len(buf) }

// Mark returns a bookmark to later slice the output.
func Mark() int { return len(buf) }

// StringFrom copies the bytes produced since mark into a new string.
func StringFrom(mark int) string { return string(buf[mark:]) }

// StringViewFrom is the zero-copy variant: the string aliases the buffer and
// is valid only until the next append or Reset.
func StringViewFrom(mark int) string {
	b := buf[mark:]
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// ----- Chainable builder over the global buffer -----

type Builder struct{}

// F returns a builder bound to the global buffer.
func F() Builder { return Builder{} }

func (Builder) S(s string) Builder {
	buf = append(buf, s...)
	return Builder{}
}

func (Builder) C(c byte) Builder {
	buf = append(buf, c)
	return Builder{}
}

func (Builder) R(r rune) Builder {
	buf = utf8.AppendRune(buf, r)
	return Builder{}
}

// I appends a base-10 integer.
func (Builder) I(v int) Builder {
	buf = strconv.AppendInt(buf, int64(v), 10)
	return Builder{}
}

// F64 appends a float with the given number of digits after the decimal.
func (Builder) F64(v float64, prec int) Builder {
	buf = strconv.AppendFloat(buf, v, 'f', prec, 64)
	return Builder{}
}

func (Builder) Bool(v bool) Builder {
	buf = strconv.AppendBool(buf, v)
	return Builder{}
}

// Hex appends an integer in hexadecimal without "0x".
func (Builder) Hex(u uint64) Builder {
	buf = strconv.AppendUint(buf, u, 16)
	return Builder{}
}
