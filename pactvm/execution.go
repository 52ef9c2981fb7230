package pactvm

import (
	"io"

	"github.com/chronos-tachyon/go-pact/pacttype"
)

// ExecutionState records information about whether an Execution has
// terminated, and why it was terminated if it was.
type ExecutionState uint8

const (
	// RunningState means the Execution has not terminated.
	RunningState ExecutionState = iota

	// AcceptedState means the Execution has terminated normally and every
	// clause held.
	AcceptedState

	// RejectedState means the Execution has terminated normally but at
	// least one clause evaluated false.
	RejectedState

	// ErrorState means the Execution has terminated abnormally due to
	// malformed bytecode or operands the bytecode has no meaning for.
	ErrorState
)

// String provides a programmer-friendly debugging string for the state.
func (s ExecutionState) String() string {
	switch s {
	case RunningState:
		return "running"
	case AcceptedState:
		return "accepted"
	case RejectedState:
		return "rejected"
	case ErrorState:
		return "error"
	}
	return "invalid"
}

// Execution is the context of an evaluation-in-progress.
//
// The machine is a forward-only cursor over the bytecode, two truth
// registers for the clause in progress, and a sticky flag holding the AND
// of the clauses already committed. A comparator and its index byte decode
// as one instruction, so the pending-comparator and operand registers of
// the abstract machine are transient within a single Step.
type Execution struct {
	// C is the contract to evaluate.
	C *Contract

	// Input is the host-supplied input table for this invocation.
	Input []pacttype.Value

	// XP (eXecution Pointer) is the index into C.Bytecode of the
	// instruction to decode and execute next.
	XP int

	// A is the accumulated truth of the clause in progress. It is
	// meaningful only while HasA is true; cleared at entry.
	A    bool
	HasA bool

	// B is the pending conjunction, waiting for the next assertion's
	// result. It is meaningful only while HasB is true. BNegate is the
	// conjunction's NOT bit, applied to the joined result.
	B       ConjOp
	BNegate bool
	HasB    bool

	// Failed records that a committed clause evaluated false. The
	// verdict is the AND of all clauses, so it can never recover.
	Failed bool

	R ExecutionState
}

// fail moves the Execution into ErrorState and wraps err with position
// context. op is taken by value so that the caller's scratch Op stays off
// the heap on the non-error path.
func (x *Execution) fail(err error, op Op) error {
	x.R = ErrorState
	cp := op
	return &RuntimeError{Err: err, XP: cp.XP, Op: &cp}
}

// failEnd is fail for errors detected at the end of the stream, where there
// is no instruction to blame.
func (x *Execution) failEnd(err error) error {
	x.R = ErrorState
	return &RuntimeError{Err: err, XP: x.XP}
}

// Step attempts to execute the next bytecode instruction.
func (x *Execution) Step() error {
	if x.R != RunningState {
		return ErrExecutionHalted
	}

	var op Op
	err := op.Decode(x.C.Bytecode, x.XP)
	if err == io.EOF {
		if x.HasB {
			return x.failEnd(ErrDanglingConjunction)
		}
		if x.Failed || (x.HasA && !x.A) {
			x.R = RejectedState
		} else {
			x.R = AcceptedState
		}
		return nil
	}
	if err != nil {
		x.R = ErrorState
		return err
	}

	x.XP += op.Len

	if op.Kind == KindConjunction {
		// A conjunction needs an assertion on its left and a
		// comparator on its right; two in a row is as malformed as
		// one at the start of the stream.
		if !x.HasA || x.HasB {
			return x.fail(ErrUnexpectedConjunction, op)
		}
		x.B = op.Conj
		x.BNegate = op.Negate
		x.HasB = true
		return nil
	}

	if int(op.Lhs) >= len(x.Input) {
		return x.fail(ErrIndexOutOfRange, op)
	}
	lhs := x.Input[op.Lhs]

	var rhs pacttype.Value
	if op.Mode == LoadInputVsInput {
		if int(op.Rhs) >= len(x.Input) {
			return x.fail(ErrIndexOutOfRange, op)
		}
		rhs = x.Input[op.Rhs]
	} else {
		if int(op.Rhs) >= len(x.C.DataTable) {
			return x.fail(ErrIndexOutOfRange, op)
		}
		rhs = x.C.DataTable[op.Rhs]
	}

	r, cmperr := pacttype.Compare(op.Cmp, lhs, rhs)
	if cmperr != nil {
		return x.fail(cmperr, op)
	}
	if op.Negate {
		r = !r
	}

	switch {
	case x.HasB:
		joined := x.B.Apply(x.A, r)
		if x.BNegate {
			joined = !joined
		}
		x.A = joined
		x.HasB = false

	case x.HasA:
		// Clause boundary: commit the finished clause into the
		// cross-clause AND, then seed the new clause with the bare
		// result so its own conjunctions join r, not the verdict.
		if !x.A {
			x.Failed = true
		}
		x.A = r

	default:
		x.A = r
		x.HasA = true
	}
	return nil
}

// Run attempts to execute the bytecode to completion.
//
// Run is strict: it consumes the whole stream even once the verdict is
// known to be false, so that malformed trailing bytes are reported
// identically for every input table. Termination is bounded by the
// bytecode length.
func (x *Execution) Run() error {
	for x.R == RunningState {
		if err := x.Step(); err != nil {
			return err
		}
	}
	return nil
}
