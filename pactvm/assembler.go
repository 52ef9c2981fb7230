package pactvm

import (
	"github.com/chronos-tachyon/go-pact/pacttype"
)

// Assembler turns sequences of instructions into Contract objects.
//
// Pact instructions are one or two bytes long and the stream has no jumps,
// so assembly is a single forward pass. The assembler tracks just enough
// structure to reject programs the VM would refuse to run: a conjunction
// with nothing on its left, or one left pending at Finish.
type Assembler struct {
	table []pacttype.Value
	code  []byte

	hasAssertion bool
	pendingConj  bool
}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// DeclareData adds a value to the data table, returning its operand index.
// A value equal to an existing entry shares that entry's slot. Fails with
// ErrTableFull once all 16 addressable slots are taken.
func (a *Assembler) DeclareData(v pacttype.Value) (uint8, error) {
	for i, existing := range a.table {
		if existing.Equal(v) {
			return uint8(i), nil
		}
	}
	if len(a.table) >= MaxDataIndex {
		return 0, ErrTableFull
	}
	a.table = append(a.table, v)
	return uint8(len(a.table) - 1), nil
}

// EmitComparator appends one assertion: a comparator opcode plus its index
// byte. Fails with ErrIndexOutOfRange if either index does not fit in four
// bits.
func (a *Assembler) EmitComparator(cmp pacttype.Op, mode LoadMode, negate bool, lhs, rhs uint8) error {
	if lhs >= MaxDataIndex || rhs >= MaxDataIndex {
		return ErrIndexOutOfRange
	}
	op := Op{
		Kind:   KindComparator,
		Negate: negate,
		Cmp:    cmp,
		Mode:   mode,
		Lhs:    lhs,
		Rhs:    rhs,
	}
	a.code = op.AppendTo(a.code)
	a.hasAssertion = true
	a.pendingConj = false
	return nil
}

// EmitConjunction appends one conjunction opcode. Fails with
// ErrUnexpectedConjunction if there is no assertion for it to join.
func (a *Assembler) EmitConjunction(conj ConjOp, negate bool) error {
	if !a.hasAssertion || a.pendingConj {
		return ErrUnexpectedConjunction
	}
	op := Op{
		Kind:   KindConjunction,
		Negate: negate,
		Conj:   conj,
	}
	a.code = op.AppendTo(a.code)
	a.pendingConj = true
	return nil
}

// Finish produces the assembled Contract. Fails with ErrDanglingConjunction
// if the last emitted instruction was a conjunction.
func (a *Assembler) Finish() (*Contract, error) {
	if a.pendingConj {
		return nil, ErrDanglingConjunction
	}
	return &Contract{
		Version:   CurrentVersion,
		DataTable: a.table,
		Bytecode:  a.code,
	}, nil
}
