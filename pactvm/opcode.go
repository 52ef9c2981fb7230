package pactvm

import (
	"fmt"

	"github.com/chronos-tachyon/go-pact/pacttype"
)

// OpKind is an enum that identifies an instruction family.
type OpKind uint8

const (
	// KindComparator instructions resolve two operands and test them,
	// yielding a boolean. Each is followed by one index byte.
	KindComparator OpKind = 0

	// KindConjunction instructions join the truth of the surrounding
	// assertions. They stand alone.
	KindConjunction OpKind = 1
)

// LoadMode is an enum that identifies where a comparator's operands are
// resolved from.
type LoadMode uint8

const (
	// LoadInputVsData resolves the left operand from the input table and
	// the right operand from the data table.
	LoadInputVsData LoadMode = 0

	// LoadInputVsInput resolves both operands from the input table.
	LoadInputVsInput LoadMode = 1
)

// ConjOp is an enum that identifies a conjunction operation.
type ConjOp uint8

const (
	ConjAnd ConjOp = 0
	ConjOr  ConjOp = 1
	ConjXor ConjOp = 2
)

// String provides the ASCII mnemonic for the ConjOp.
func (c ConjOp) String() string {
	switch c {
	case ConjAnd:
		return "AND"
	case ConjOr:
		return "OR"
	case ConjXor:
		return "XOR"
	}
	return fmt.Sprintf("CONJ#%02x", uint8(c))
}

// negatedName returns the mnemonic of the conjunction with its NOT bit set.
func (c ConjOp) negatedName() string {
	switch c {
	case ConjAnd:
		return "NAND"
	case ConjOr:
		return "NOR"
	case ConjXor:
		return "XNOR"
	}
	return "NOT " + c.String()
}

// Apply joins two booleans with the conjunction.
func (c ConjOp) Apply(a, b bool) bool {
	switch c {
	case ConjOr:
		return a || b
	case ConjXor:
		return a != b
	default:
		return a && b
	}
}

// Opcode byte layout. Bit 7 is the MSB.
//
//	bit 7    kind       0 = comparator, 1 = conjunction
//	bit 6    NOT        invert the instruction's boolean result
//	bits 5-2 operation  comparator: bit 5 load mode, bits 4-2 comparator
//	                    conjunction: 0 AND, 1 OR, 2 XOR
//	bits 1-0 reserved   must be zero
const (
	opcodeKindBit      = 0x80
	opcodeNotBit       = 0x40
	opcodeLoadBit      = 0x20
	opcodeCmpMask      = 0x1c
	opcodeCmpShift     = 2
	opcodeConjMask     = 0x3c
	opcodeConjShift    = 2
	opcodeReservedMask = 0x03
)

const (
	maxComparator  = uint8(pacttype.OpIn)
	maxConjunction = uint8(ConjXor)
)
