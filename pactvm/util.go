package pactvm

import (
	"bytes"
	"errors"
	"fmt"
)

// assert panics if cond is false.
func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		var buf bytes.Buffer
		buf.WriteString("assertion failed: ")
		fmt.Fprintf(&buf, format, args...)
		panic(errors.New(buf.String()))
	}
}

// HexDump formats a byte slice as a classic offset-prefixed hex listing.
func HexDump(in []byte) string {
	var buf bytes.Buffer
	buf.WriteString("00000")
	dirty := false
	i := uint(0)
	for i < uint(len(in)) {
		b := in[i]
		mod16 := i & 0xf
		if mod16 == 0x0 || mod16 == 0x8 {
			buf.WriteByte(' ')
			buf.WriteByte(' ')
		} else {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%02x", b)
		dirty = true
		i += 1
		if mod16 == 0xf {
			fmt.Fprintf(&buf, "\n%05x", i)
			dirty = false
		}
	}
	if dirty {
		fmt.Fprintf(&buf, "\n%05x", i)
	}
	buf.WriteByte('\n')
	return buf.String()
}
