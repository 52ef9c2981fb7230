package pactvm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedVersion    = errors.New("unsupported contract version")
	ErrTruncated             = errors.New("truncated contract: input ended mid-structure")
	ErrInvalidOpcode         = errors.New("invalid instruction: reserved bits set or undefined bit pattern")
	ErrIndexOutOfRange       = errors.New("index references an absent table entry")
	ErrUnexpectedConjunction = errors.New("conjunction with no assertion to join")
	ErrDanglingConjunction   = errors.New("bytecode ended with a pending conjunction")
	ErrExecutionHalted       = errors.New("execution already halted")
	ErrTableFull             = errors.New("table has no addressable slots left")
)

// DecodeError is an error encountered while decoding a contract blob or its
// bytecode stream. This typically means that corrupt or hostile bytes are
// being evaluated.
type DecodeError struct {
	Err    error
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("github.com/chronos-tachyon/go-pact/pactvm: decode error @ offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RuntimeError is an error encountered during the evaluation of a decoded
// contract: an operand index past the end of a table, an operator applied to
// operands it has no meaning for, or a conjunction with nothing to join.
type RuntimeError struct {
	Err error
	XP  int
	Op  *Op
}

func (e *RuntimeError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "github.com/chronos-tachyon/go-pact/pactvm: runtime error @ XP %d: ", e.XP)
	if e.Op != nil {
		buf.WriteString(e.Op.String())
		buf.WriteString(": ")
	}
	buf.WriteString(e.Err.Error())
	return buf.String()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
