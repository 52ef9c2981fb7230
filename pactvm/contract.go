package pactvm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/go-pact/pacttype"
)

// CurrentVersion is the only contract format version this VM understands.
const CurrentVersion = 0

// MaxDataIndex is the number of table slots a 4-bit operand index can reach.
const MaxDataIndex = 16

// Contract is a Pact assertion that has been compiled to bytecode.
type Contract struct {
	// Version is the format version byte. Always CurrentVersion.
	Version uint8

	// DataTable is the contract-authored list of values, referenced by
	// the right operand of INPUT-vs-DATA comparators.
	DataTable []pacttype.Value

	// Bytecode is the instruction stream to execute.
	Bytecode []byte
}

// DecodeContract decodes a contract blob: one version byte, a
// length-prefixed data table, then the remaining bytes as bytecode.
//
// The returned Contract aliases blob; the caller keeps ownership and must
// not mutate it for the Contract's lifetime.
func DecodeContract(blob []byte) (*Contract, error) {
	if len(blob) < 1 {
		return nil, &DecodeError{Err: ErrTruncated, Offset: 0}
	}
	if blob[0] != CurrentVersion {
		return nil, &DecodeError{Err: ErrUnsupportedVersion, Offset: 0}
	}
	if len(blob) < 2 {
		return nil, &DecodeError{Err: ErrTruncated, Offset: 1}
	}

	l := int(blob[1])
	cur := 2
	var table []pacttype.Value
	if l != 0 {
		table = make([]pacttype.Value, 0, l)
	}
	for i := 0; i < l; i++ {
		v, n, err := pacttype.Decode(blob[cur:])
		if err != nil {
			return nil, &DecodeError{Err: err, Offset: cur}
		}
		table = append(table, v)
		cur += n
	}

	return &Contract{
		Version:   blob[0],
		DataTable: table,
		Bytecode:  blob[cur:],
	}, nil
}

// EncodedLen returns the number of bytes AppendTo will write.
func (c *Contract) EncodedLen() int {
	n := 2 + len(c.Bytecode)
	for _, v := range c.DataTable {
		n += v.EncodedLen()
	}
	return n
}

// AppendTo appends the contract's wire encoding to dst and returns the
// extended slice. Encoding is the byte-exact inverse of DecodeContract.
//
// This function will panic if the data table does not fit in the one-byte
// length prefix.
func (c *Contract) AppendTo(dst []byte) []byte {
	assert(len(c.DataTable) <= 0xff, "data table length %d exceeds length byte", len(c.DataTable))
	dst = append(dst, c.Version, byte(len(c.DataTable)))
	for _, v := range c.DataTable {
		dst = v.AppendTo(dst)
	}
	return append(dst, c.Bytecode...)
}

// Encode returns the contract's wire encoding.
func (c *Contract) Encode() []byte {
	return c.AppendTo(make([]byte, 0, c.EncodedLen()))
}

// Exec prepares an evaluation of the contract against the provided input
// table. The caller drives it with Step or Run.
func (c *Contract) Exec(input []pacttype.Value) *Execution {
	return &Execution{C: c, Input: input}
}

// Evaluate runs the contract against the provided input table to
// completion, returning the verdict.
//
// Evaluation is a pure function of (contract, input): it performs no I/O,
// allocates nothing on the happy path, and is safe to call concurrently on
// a shared Contract.
func (c *Contract) Evaluate(input []pacttype.Value) (bool, error) {
	x := Execution{C: c, Input: input}
	if err := x.Run(); err != nil {
		return false, err
	}
	return x.R == AcceptedState, nil
}

// Evaluate decodes a contract blob and runs it against the provided input
// table. This is the entry point a host runtime consumes.
func Evaluate(blob []byte, input []pacttype.Value) (bool, error) {
	c, err := DecodeContract(blob)
	if err != nil {
		return false, err
	}
	return c.Evaluate(input)
}

// Disassemble converts the contract's data table and bytecode into assembly
// listing form, writing the result to the provided writer.
func (c *Contract) Disassemble(w io.Writer) (int, error) {
	var buf bytes.Buffer
	var total int

	flush := func() error {
		n, err := w.Write(buf.Bytes())
		total += n
		buf.Reset()
		return err
	}

	fmt.Fprintf(&buf, "%%version %d\n", c.Version)
	if err := flush(); err != nil {
		return total, err
	}
	for i, v := range c.DataTable {
		fmt.Fprintf(&buf, "%%value %d: %s\n", i, v)
		if err := flush(); err != nil {
			return total, err
		}
	}

	buf.WriteByte('\n')
	if err := flush(); err != nil {
		return total, err
	}

	var op Op
	var xp int
	for {
		err := op.Decode(c.Bytecode, xp)
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
		xp += op.Len

		buf.WriteByte('\t')
		buf.WriteString(op.String())
		buf.WriteByte('\n')
		if err := flush(); err != nil {
			return total, err
		}
	}
	return total, nil
}
