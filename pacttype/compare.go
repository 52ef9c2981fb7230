package pacttype

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedOperator = errors.New("operator not applicable to operand variant")
	ErrTypeMismatch        = errors.New("operand variants disagree")
)

// Op is an enum that identifies a comparison operator.
type Op uint8

const (
	// OpEq tests equality: byte-wise for StringLike, by magnitude for
	// Numeric.
	OpEq Op = 0

	// OpGt tests strict magnitude ordering. Numeric only.
	OpGt Op = 1

	// OpGte tests magnitude ordering-or-equality. Numeric only.
	OpGte Op = 2

	// OpIn tests membership of the left operand in the List on the right.
	OpIn Op = 3
)

// String provides the ASCII mnemonic for the Op.
func (op Op) String() string {
	switch op {
	case OpEq:
		return "EQ"
	case OpGt:
		return "GT"
	case OpGte:
		return "GTE"
	case OpIn:
		return "IN"
	}
	return fmt.Sprintf("OP#%02x", uint8(op))
}

// Compare applies op to the operand pair (lhs, rhs).
//
// The applicability rules are closed:
//
//	EQ        StringLike/StringLike, Numeric/Numeric
//	GT, GTE   Numeric/Numeric
//	IN        StringLike/List<StringLike>, Numeric/List<Numeric>
//
// Operands of disagreeing variants yield ErrTypeMismatch. Agreeing variants
// outside the table yield ErrUnsupportedOperator. For IN, a List on the left
// or a non-List on the right yields ErrUnsupportedOperator, and a list
// element whose variant differs from the left operand yields
// ErrTypeMismatch. Compare never allocates.
func Compare(op Op, lhs, rhs Value) (bool, error) {
	switch op {
	case OpEq:
		if lhs.Kind != rhs.Kind {
			return false, ErrTypeMismatch
		}
		switch lhs.Kind {
		case KindStringLike:
			return bytesEqual(lhs.Payload, rhs.Payload), nil
		case KindNumeric:
			return compareMagnitude(lhs.Payload, rhs.Payload) == 0, nil
		}
		return false, ErrUnsupportedOperator

	case OpGt, OpGte:
		if lhs.Kind != rhs.Kind {
			return false, ErrTypeMismatch
		}
		if lhs.Kind != KindNumeric {
			return false, ErrUnsupportedOperator
		}
		c := compareMagnitude(lhs.Payload, rhs.Payload)
		if op == OpGt {
			return c > 0, nil
		}
		return c >= 0, nil

	case OpIn:
		if lhs.Kind == KindList || rhs.Kind != KindList {
			return false, ErrUnsupportedOperator
		}
		for _, item := range rhs.Items {
			if item.Kind != lhs.Kind {
				return false, ErrTypeMismatch
			}
			if lhs.Equal(item) {
				return true, nil
			}
		}
		// An empty list has no inner variant to mismatch; nothing is a
		// member of it.
		return false, nil
	}
	return false, ErrUnsupportedOperator
}

// compareMagnitude compares two little-endian unsigned magnitudes. The
// shorter payload is zero-extended on the high end. Returns -1, 0, or +1.
func compareMagnitude(a, b []byte) int {
	i, j := len(a), len(b)
	for i > j {
		i--
		if a[i] != 0 {
			return 1
		}
	}
	for j > i {
		j--
		if b[j] != 0 {
			return -1
		}
	}
	for k := i - 1; k >= 0; k-- {
		switch {
		case a[k] > b[k]:
			return 1
		case a[k] < b[k]:
			return -1
		}
	}
	return 0
}
