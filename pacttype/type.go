package pacttype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrTruncated         = errors.New("truncated value: input ended mid-structure")
	ErrUnknownTypeTag    = errors.New("unknown type tag")
	ErrListInnerMismatch = errors.New("list elements have differing variants")
	ErrListTooDeep       = errors.New("list nesting exceeds maximum depth")
)

// MaxListDepth is the deepest list nesting that Decode accepts. The surface
// language only produces lists of primitives, so anything deeper is treated
// as hostile input.
const MaxListDepth = 4

// Kind is an enum that identifies a Value's variant.
type Kind uint8

const (
	// KindStringLike is an opaque byte sequence. It supports equality and
	// membership, nothing else.
	KindStringLike Kind = 0

	// KindNumeric is an unsigned magnitude, stored little-endian on the
	// wire. It supports equality, ordering, and membership.
	KindNumeric Kind = 1

	// KindList is an ordered sequence of Values sharing a single variant.
	// It appears only as the right-hand operand of a membership test.
	KindList Kind = 2
)

// String provides a programmer-friendly debugging string for the Kind.
func (k Kind) String() string {
	switch k {
	case KindStringLike:
		return "string"
	case KindNumeric:
		return "numeric"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("KIND#%02x", uint8(k))
}

// Value is a single Pact value: an opaque byte string, an unsigned numeric
// magnitude, or a list of values sharing one variant.
//
// The zero Value is an empty StringLike.
type Value struct {
	// Kind discriminates the variant.
	Kind Kind

	// Payload holds the raw wire bytes of a StringLike or Numeric value.
	// Numeric payloads are little-endian. A decoded Value aliases the
	// buffer it was decoded from.
	Payload []byte

	// Items holds the elements of a List, in wire order. Nil for the
	// other variants.
	Items []Value
}

// StringLike returns a StringLike Value holding the given bytes.
func StringLike(b []byte) Value {
	return Value{Kind: KindStringLike, Payload: b}
}

// String returns a StringLike Value holding the bytes of s.
func String(s string) Value {
	return Value{Kind: KindStringLike, Payload: []byte(s)}
}

// Numeric returns a Numeric Value in the canonical fixed-width encoding:
// eight little-endian bytes.
func Numeric(v uint64) Value {
	p := make([]byte, 8)
	for i := range p {
		p[i] = byte(v >> (uint(i) * 8))
	}
	return Value{Kind: KindNumeric, Payload: p}
}

// NumericBytes returns a Numeric Value with an explicit little-endian
// payload. Payloads of any length compare by zero-extended magnitude.
func NumericBytes(b []byte) Value {
	return Value{Kind: KindNumeric, Payload: b}
}

// List returns a List Value holding the given items.
func List(items ...Value) Value {
	return Value{Kind: KindList, Items: items}
}

// Uint64 returns the magnitude of a Numeric value, if it is a Numeric and
// the magnitude fits in 64 bits.
func (v Value) Uint64() (uint64, bool) {
	if v.Kind != KindNumeric {
		return 0, false
	}
	var u uint64
	for i, b := range v.Payload {
		if i >= 8 {
			if b != 0 {
				return 0, false
			}
			continue
		}
		u |= uint64(b) << (uint(i) * 8)
	}
	return u, true
}

// Decode attempts to decode a single length-prefixed Value from the front of
// buf. It returns the decoded Value and the number of bytes consumed.
//
// The wire form is one tag byte, one length byte, then exactly that many
// payload bytes. A List's payload is itself a sequence of encoded Values and
// must be consumed exactly.
func Decode(buf []byte) (Value, int, error) {
	return decode(buf, 1)
}

func decode(buf []byte, depth int) (Value, int, error) {
	if len(buf) < 2 {
		return Value{}, 0, ErrTruncated
	}
	tag := buf[0]
	n := int(buf[1])
	if tag > uint8(KindList) {
		return Value{}, 0, ErrUnknownTypeTag
	}
	if len(buf) < 2+n {
		return Value{}, 0, ErrTruncated
	}
	payload := buf[2 : 2+n]

	if Kind(tag) != KindList {
		return Value{Kind: Kind(tag), Payload: payload}, 2 + n, nil
	}

	if depth > MaxListDepth {
		return Value{}, 0, ErrListTooDeep
	}
	var items []Value
	inner := Kind(0)
	for i := 0; i < len(payload); {
		item, m, err := decode(payload[i:], depth+1)
		if err != nil {
			return Value{}, 0, err
		}
		if len(items) == 0 {
			inner = item.Kind
		} else if item.Kind != inner {
			return Value{}, 0, ErrListInnerMismatch
		}
		items = append(items, item)
		i += m
	}
	return Value{Kind: KindList, Items: items}, 2 + n, nil
}

// EncodedLen returns the number of bytes AppendTo will write.
func (v Value) EncodedLen() int {
	return 2 + v.payloadLen()
}

func (v Value) payloadLen() int {
	if v.Kind != KindList {
		return len(v.Payload)
	}
	var n int
	for _, item := range v.Items {
		n += item.EncodedLen()
	}
	return n
}

// AppendTo appends the wire encoding of v to dst and returns the extended
// slice.
//
// This function will panic if the payload does not fit in the one-byte
// length prefix.
func (v Value) AppendTo(dst []byte) []byte {
	n := v.payloadLen()
	assert(n <= 0xff, "payload length %d exceeds length byte", n)
	dst = append(dst, byte(v.Kind), byte(n))
	if v.Kind != KindList {
		return append(dst, v.Payload...)
	}
	for _, item := range v.Items {
		dst = item.AppendTo(dst)
	}
	return dst
}

// Encode returns the wire encoding of v.
func (v Value) Encode() []byte {
	return v.AppendTo(make([]byte, 0, v.EncodedLen()))
}

// Equal reports whether v and w are the same variant and hold the same
// value. Numeric values are compared by magnitude, so payloads of unequal
// width may still be equal.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}
	switch v.Kind {
	case KindNumeric:
		return compareMagnitude(v.Payload, w.Payload) == 0
	case KindList:
		if len(v.Items) != len(w.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(w.Items[i]) {
				return false
			}
		}
		return true
	}
	return bytesEqual(v.Payload, w.Payload)
}

// String provides a programmer-friendly debugging string for the Value.
func (v Value) String() string {
	var buf strings.Builder
	v.writeTo(&buf)
	return buf.String()
}

func (v Value) writeTo(buf *strings.Builder) {
	switch v.Kind {
	case KindStringLike:
		buf.WriteString("string ")
		buf.WriteString(strconv.Quote(string(v.Payload)))

	case KindNumeric:
		buf.WriteString("numeric ")
		if u, ok := v.Uint64(); ok {
			fmt.Fprintf(buf, "%d", u)
		} else {
			buf.WriteString("0x")
			for i := len(v.Payload) - 1; i >= 0; i-- {
				fmt.Fprintf(buf, "%02x", v.Payload[i])
			}
		}

	case KindList:
		buf.WriteString("list [")
		for i, item := range v.Items {
			if i != 0 {
				buf.WriteString(", ")
			}
			item.writeTo(buf)
		}
		buf.WriteByte(']')

	default:
		fmt.Fprintf(buf, "%v", v.Kind)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assert panics if cond is false.
func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Errorf("assertion failed: "+format, args...))
	}
}
