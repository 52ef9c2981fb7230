// Package pactvm implements a virtual machine for Pact permission
// contracts: pre-declared logical assertions evaluated over the dynamic
// inputs of a delegated transaction.
//
// A compiled contract is a single blob:
//
//	offset 0      version byte, must be 0x00
//	offset 1      data table length L (u8)
//	offset 2..    L encoded values, each: tag byte, length byte, payload
//	offset ..end  bytecode
//
// Multi-byte integers inside a numeric payload are little-endian unsigned
// magnitudes.
//
// The VM uses the following instruction encoding for its bytecode:
//
//	[ k n o o | o o r r ]  [ llll | rrrr ]?
//
//	k  = kind: 0 comparator, 1 conjunction
//	n  = NOT: invert the instruction's boolean result
//	oooo = operation (bits 5-2)
//	rr = reserved, must be zero
//
// A comparator (k = 0) splits its operation field further:
//
//	bit 5    load mode: 0 = INPUT vs DATA, 1 = INPUT vs INPUT
//	bits 4-2 comparator
//
//	+-----+------+
//	| 000 | EQ   |
//	| 001 | GT   |
//	| 010 | GTE  |
//	| 011 | IN   |
//	+-----+------+
//
// and is always followed by one index byte: the high nibble is the left
// operand's index, the low nibble the right operand's. The left operand
// always resolves from the input table; the right operand resolves from the
// data table in load mode 0 and from the input table in load mode 1. The
// four-bit index is a hard cap; an index at or past the referenced table's
// length is an error.
//
// A conjunction (k = 1) stands alone, with the operation in bits 5-2:
//
//	+------+------+-------------+
//	| 0000 | AND  | NOT => NAND |
//	| 0001 | OR   | NOT => NOR  |
//	| 0010 | XOR  | NOT => XNOR |
//	+------+------+-------------+
//
// Any other bit pattern, and any nonzero reserved bit, is ErrInvalidOpcode.
//
// # Execution model
//
// The machine makes a single forward pass over the bytecode; there is no
// look-ahead, no backtracking, and no jump. State is a cursor (XP) plus two
// truth registers, both cleared at entry:
//
//	A  accumulated truth of the clause in progress
//	B  pending conjunction, waiting for its right-hand assertion
//
// Executing a comparator resolves both operands, applies the comparator,
// applies its NOT bit, and folds the result r into A: through B if a
// conjunction is pending (B's NOT bit inverts the joined result). If
// instead A already holds a finished clause's truth, that clause is
// committed into the cross-clause AND and A := r seeds the new clause, so
// a conjunction later in the new clause joins r rather than the running
// verdict. Otherwise A := r starts the first clause.
// Executing a conjunction with nothing on its left — at the start of the
// stream, or directly after another conjunction — is
// ErrUnexpectedConjunction; reaching the end of the stream with B pending
// is ErrDanglingConjunction.
//
// A maximal run of assertions joined by explicit conjunctions forms a
// clause; consecutive clauses join by implicit AND, so the contract is
// upheld iff every clause holds. The empty bytecode stream is vacuously
// accepted.
//
// Evaluation is strict: the whole stream is decoded and executed even once
// the verdict is known to be false, so a structurally malformed contract
// reports the same error for every input table.
//
// Evaluation that reaches a verdict allocates nothing after DecodeContract
// (a failed evaluation allocates its RuntimeError), and is bounded by the
// bytecode length, so a host may evaluate untrusted contracts with bounded
// effort and share one decoded Contract across goroutines.
package pactvm
