package pactvm

import (
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/go-pact/pacttype"
)

// Op is a single Pact instruction, decoded from raw bytecode.
type Op struct {
	// XP is the code address of the start of the instruction.
	XP int

	// Len is the encoded length of the instruction: one byte for a
	// conjunction, two for a comparator and its index byte. Decoding of
	// the next instruction begins at XP+Len.
	Len int

	// Kind is the instruction family.
	Kind OpKind

	// Negate is the NOT bit: it inverts the instruction's boolean result.
	Negate bool

	// Cmp, Mode, Lhs, and Rhs describe a comparator instruction.
	Cmp  pacttype.Op
	Mode LoadMode
	Lhs  uint8
	Rhs  uint8

	// Conj describes a conjunction instruction.
	Conj ConjOp
}

// Decode attempts to decode an instruction from the provided bytecode stream
// at the provided code address. Overwrites this Op's existing data.
//
// Returns io.EOF at the exact end of the stream. Any other failure is a
// *DecodeError: ErrInvalidOpcode for reserved bits or undefined bit
// patterns, ErrTruncated for a comparator whose index byte is missing.
func (op *Op) Decode(stream []byte, xp int) error {
	*op = Op{XP: xp, Len: 1}

	if xp >= len(stream) {
		return io.EOF
	}

	b := stream[xp]
	if b&opcodeReservedMask != 0 {
		return &DecodeError{Err: ErrInvalidOpcode, Offset: xp}
	}
	op.Negate = b&opcodeNotBit != 0

	if b&opcodeKindBit != 0 {
		op.Kind = KindConjunction
		c := (b & opcodeConjMask) >> opcodeConjShift
		if c > maxConjunction {
			return &DecodeError{Err: ErrInvalidOpcode, Offset: xp}
		}
		op.Conj = ConjOp(c)
		return nil
	}

	op.Kind = KindComparator
	if b&opcodeLoadBit != 0 {
		op.Mode = LoadInputVsInput
	}
	c := (b & opcodeCmpMask) >> opcodeCmpShift
	if c > maxComparator {
		return &DecodeError{Err: ErrInvalidOpcode, Offset: xp}
	}
	op.Cmp = pacttype.Op(c)

	if xp+1 >= len(stream) {
		return &DecodeError{Err: ErrTruncated, Offset: xp}
	}
	idx := stream[xp+1]
	op.Lhs = idx >> 4
	op.Rhs = idx & 0x0f
	op.Len = 2
	return nil
}

// EncodedLen returns the number of bytes AppendTo will write.
func (op *Op) EncodedLen() int {
	if op.Kind == KindComparator {
		return 2
	}
	return 1
}

// AppendTo appends the instruction's encoding to dst and returns the
// extended slice.
func (op *Op) AppendTo(dst []byte) []byte {
	var b byte
	if op.Negate {
		b |= opcodeNotBit
	}
	if op.Kind == KindConjunction {
		b |= opcodeKindBit
		b |= byte(op.Conj) << opcodeConjShift
		return append(dst, b)
	}
	if op.Mode == LoadInputVsInput {
		b |= opcodeLoadBit
	}
	b |= byte(op.Cmp) << opcodeCmpShift
	idx := op.Lhs<<4 | op.Rhs&0x0f
	return append(dst, b, idx)
}

// String provides a programmer-friendly debugging string for the Op.
func (op *Op) String() string {
	var buf strings.Builder
	if op.Kind == KindConjunction {
		if op.Negate {
			buf.WriteString(op.Conj.negatedName())
		} else {
			buf.WriteString(op.Conj.String())
		}
		return buf.String()
	}
	if op.Negate {
		buf.WriteString("NOT ")
	}
	buf.WriteString(op.Cmp.String())
	rhs := "data"
	if op.Mode == LoadInputVsInput {
		rhs = "in"
	}
	fmt.Fprintf(&buf, " in[%d], %s[%d]", op.Lhs, rhs, op.Rhs)
	return buf.String()
}
