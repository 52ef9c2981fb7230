package pacttype

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	type testrow struct {
		Op       Op
		Lhs      Value
		Rhs      Value
		Expected bool
		Err      error
	}

	data := []testrow{
		// EQ on StringLike is byte-wise.
		testrow{Op: OpEq, Lhs: String("alice"), Rhs: String("alice"), Expected: true},
		testrow{Op: OpEq, Lhs: String("alice"), Rhs: String("bob"), Expected: false},
		testrow{Op: OpEq, Lhs: String(""), Rhs: StringLike(nil), Expected: true},

		// EQ on Numeric is by magnitude, with zero-extension.
		testrow{Op: OpEq, Lhs: Numeric(16001), Rhs: Numeric(16001), Expected: true},
		testrow{Op: OpEq, Lhs: Numeric(16001), Rhs: Numeric(16002), Expected: false},
		testrow{Op: OpEq, Lhs: NumericBytes([]byte{0x81, 0x3e}), Rhs: Numeric(16001), Expected: true},
		testrow{Op: OpEq, Lhs: NumericBytes(nil), Rhs: Numeric(0), Expected: true},

		// Ordering.
		testrow{Op: OpGt, Lhs: Numeric(100), Rhs: Numeric(50), Expected: true},
		testrow{Op: OpGt, Lhs: Numeric(50), Rhs: Numeric(50), Expected: false},
		testrow{Op: OpGte, Lhs: Numeric(50), Rhs: Numeric(50), Expected: true},
		testrow{Op: OpGte, Lhs: Numeric(49), Rhs: Numeric(50), Expected: false},
		testrow{
			// A longer payload with zero high bytes is not bigger.
			Op:       OpGt,
			Lhs:      NumericBytes([]byte{0x05, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}),
			Rhs:      NumericBytes([]byte{0x05}),
			Expected: false,
		},
		testrow{
			Op:       OpGt,
			Lhs:      NumericBytes([]byte{0, 0, 0, 0, 0, 0, 0, 0, 1}),
			Rhs:      Numeric(^uint64(0)),
			Expected: true,
		},

		// Membership.
		testrow{Op: OpIn, Lhs: Numeric(16010), Rhs: List(Numeric(16001), Numeric(16010)), Expected: true},
		testrow{Op: OpIn, Lhs: Numeric(7), Rhs: List(Numeric(16001), Numeric(16010)), Expected: false},
		testrow{Op: OpIn, Lhs: String("bob"), Rhs: List(String("alice"), String("bob")), Expected: true},
		testrow{
			// Magnitude equality applies inside lists too.
			Op:       OpIn,
			Lhs:      NumericBytes([]byte{0x8a, 0x3e}),
			Rhs:      List(Numeric(16010)),
			Expected: true,
		},
		testrow{Op: OpIn, Lhs: Numeric(1), Rhs: List(), Expected: false},
		testrow{Op: OpIn, Lhs: String("x"), Rhs: List(), Expected: false},

		// Cross-variant comparison is a type error.
		testrow{Op: OpEq, Lhs: Numeric(5), Rhs: String("alice"), Err: ErrTypeMismatch},
		testrow{Op: OpEq, Lhs: String("alice"), Rhs: Numeric(5), Err: ErrTypeMismatch},
		testrow{Op: OpGt, Lhs: Numeric(5), Rhs: String("5"), Err: ErrTypeMismatch},
		testrow{Op: OpIn, Lhs: Numeric(5), Rhs: List(String("alice")), Err: ErrTypeMismatch},

		// Operators outside the applicability matrix.
		testrow{Op: OpGt, Lhs: String("b"), Rhs: String("a"), Err: ErrUnsupportedOperator},
		testrow{Op: OpGte, Lhs: String("a"), Rhs: String("a"), Err: ErrUnsupportedOperator},
		testrow{Op: OpEq, Lhs: List(Numeric(1)), Rhs: List(Numeric(1)), Err: ErrUnsupportedOperator},
		testrow{Op: OpIn, Lhs: Numeric(5), Rhs: Numeric(5), Err: ErrUnsupportedOperator},
		testrow{Op: OpIn, Lhs: List(Numeric(1)), Rhs: List(List(Numeric(1))), Err: ErrUnsupportedOperator},
		testrow{Op: Op(9), Lhs: Numeric(1), Rhs: Numeric(1), Err: ErrUnsupportedOperator},
	}

	for i, row := range data {
		actual, err := Compare(row.Op, row.Lhs, row.Rhs)
		if row.Err != nil {
			if !errors.Is(err, row.Err) {
				t.Errorf("%s/%03d: %s: expected error %v, got %v", t.Name(), i, row.Op, row.Err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s/%03d: %s: error: %v", t.Name(), i, row.Op, err)
			continue
		}
		if actual != row.Expected {
			t.Errorf("%s/%03d: %s %s %s: expected %v, got %v", t.Name(), i, row.Lhs, row.Op, row.Rhs, row.Expected, actual)
		}
	}
}

func TestCompare_negationLaw(t *testing.T) {
	// NOT is applied by the VM, but the value model must keep EQ and GTE
	// total on numerics for the inversion laws to hold.
	pairs := [][2]uint64{
		{0, 0}, {0, 1}, {1, 0}, {50, 100}, {100, 50}, {16001, 16001},
		{^uint64(0), 0}, {^uint64(0), ^uint64(0)},
	}
	for i, pair := range pairs {
		a, b := Numeric(pair[0]), Numeric(pair[1])
		eq, err1 := Compare(OpEq, a, b)
		gt, err2 := Compare(OpGt, a, b)
		gte, err3 := Compare(OpGte, a, b)
		if err1 != nil || err2 != nil || err3 != nil {
			t.Errorf("%s/%03d: errors: %v %v %v", t.Name(), i, err1, err2, err3)
			continue
		}
		if gte != (gt || eq) {
			t.Errorf("%s/%03d: GTE != GT||EQ for (%d, %d)", t.Name(), i, pair[0], pair[1])
		}
		if !gte != (pair[0] < pair[1]) {
			t.Errorf("%s/%03d: NOT GTE disagrees with < for (%d, %d)", t.Name(), i, pair[0], pair[1])
		}
	}
}
