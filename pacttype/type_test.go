package pacttype

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	type testrow struct {
		In       []byte
		Expected Value
		Len      int
		Err      error
	}

	data := []testrow{
		testrow{
			In:       []byte{0x00, 0x05, 'a', 'l', 'i', 'c', 'e'},
			Expected: String("alice"),
			Len:      7,
		},
		testrow{
			In:       []byte{0x00, 0x00},
			Expected: StringLike(nil),
			Len:      2,
		},
		testrow{
			In:       []byte{0x01, 0x08, 0x81, 0x3e, 0, 0, 0, 0, 0, 0},
			Expected: Numeric(16001),
			Len:      10,
		},
		testrow{
			// Short numeric payloads are legal on the wire.
			In:       []byte{0x01, 0x02, 0x81, 0x3e},
			Expected: NumericBytes([]byte{0x81, 0x3e}),
			Len:      4,
		},
		testrow{
			// Trailing bytes past the declared length are not consumed.
			In:       []byte{0x01, 0x01, 0x07, 0xff, 0xff},
			Expected: NumericBytes([]byte{0x07}),
			Len:      3,
		},
		testrow{
			In: []byte{
				0x02, 0x08,
				0x01, 0x02, 0x01, 0x00,
				0x01, 0x02, 0x02, 0x00,
			},
			Expected: List(
				NumericBytes([]byte{0x01, 0x00}),
				NumericBytes([]byte{0x02, 0x00}),
			),
			Len: 10,
		},
		testrow{
			In:       []byte{0x02, 0x00},
			Expected: List(),
			Len:      2,
		},

		testrow{In: nil, Err: ErrTruncated},
		testrow{In: []byte{0x01}, Err: ErrTruncated},
		testrow{In: []byte{0x01, 0x08, 0x81, 0x3e}, Err: ErrTruncated},
		testrow{In: []byte{0x03, 0x00}, Err: ErrUnknownTypeTag},
		testrow{
			// List whose last element runs past the list's byte budget.
			In:  []byte{0x02, 0x04, 0x01, 0x04, 0x01, 0x02},
			Err: ErrTruncated,
		},
		testrow{
			// Mixed variants inside one list.
			In:  []byte{0x02, 0x06, 0x01, 0x01, 0x05, 0x00, 0x01, 0x61},
			Err: ErrListInnerMismatch,
		},
		testrow{
			// Lists nested five deep.
			In:  []byte{0x02, 0x08, 0x02, 0x06, 0x02, 0x04, 0x02, 0x02, 0x02, 0x00},
			Err: ErrListTooDeep,
		},
		testrow{
			// Four deep is still fine.
			In:       []byte{0x02, 0x06, 0x02, 0x04, 0x02, 0x02, 0x02, 0x00},
			Expected: List(List(List(List()))),
			Len:      8,
		},
	}

	for i, row := range data {
		v, n, err := Decode(row.In)
		if row.Err != nil {
			if !errors.Is(err, row.Err) {
				t.Errorf("%s/%03d: expected error %v, got %v", t.Name(), i, row.Err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s/%03d: error: %v", t.Name(), i, err)
			continue
		}
		if n != row.Len {
			t.Errorf("%s/%03d: expected %d bytes consumed, got %d", t.Name(), i, row.Len, n)
		}
		if !v.Equal(row.Expected) || v.Kind != row.Expected.Kind {
			t.Errorf("%s/%03d: expected %s, got %s", t.Name(), i, row.Expected, v)
		}
	}
}

func TestEncode_roundTrip(t *testing.T) {
	data := []Value{
		StringLike(nil),
		String("alice"),
		Numeric(0),
		Numeric(16001),
		Numeric(^uint64(0)),
		NumericBytes([]byte{0x01}),
		List(),
		List(Numeric(16001), Numeric(16010)),
		List(String("alice"), String("bob")),
		List(List(Numeric(1)), List(Numeric(2), Numeric(3))),
	}

	for i, v := range data {
		raw := v.Encode()
		if len(raw) != v.EncodedLen() {
			t.Errorf("%s/%03d: EncodedLen %d but wrote %d bytes", t.Name(), i, v.EncodedLen(), len(raw))
		}
		back, n, err := Decode(raw)
		if err != nil {
			t.Errorf("%s/%03d: error: %v", t.Name(), i, err)
			continue
		}
		if n != len(raw) {
			t.Errorf("%s/%03d: decode consumed %d of %d bytes", t.Name(), i, n, len(raw))
		}
		if !back.Equal(v) {
			t.Errorf("%s/%03d: round trip changed value: %s -> %s", t.Name(), i, v, back)
		}
		again := back.Encode()
		if !bytesEqual(raw, again) {
			t.Errorf("%s/%03d: re-encode changed bytes:\n\t% x\n\t% x", t.Name(), i, raw, again)
		}
	}
}

func TestValue_Uint64(t *testing.T) {
	type testrow struct {
		In       Value
		Expected uint64
		OK       bool
	}

	data := []testrow{
		testrow{Numeric(0), 0, true},
		testrow{Numeric(16001), 16001, true},
		testrow{NumericBytes([]byte{0x81, 0x3e}), 16001, true},
		testrow{NumericBytes([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}), 1, true},
		testrow{NumericBytes([]byte{0, 0, 0, 0, 0, 0, 0, 0, 1}), 0, false},
		testrow{String("alice"), 0, false},
		testrow{List(), 0, false},
	}

	for i, row := range data {
		u, ok := row.In.Uint64()
		if u != row.Expected || ok != row.OK {
			t.Errorf("%s/%03d: expected (%d, %v), got (%d, %v)", t.Name(), i, row.Expected, row.OK, u, ok)
		}
	}
}

func TestValue_String(t *testing.T) {
	type testrow struct {
		In       Value
		Expected string
	}

	data := []testrow{
		testrow{String("alice"), `string "alice"`},
		testrow{Numeric(16001), "numeric 16001"},
		testrow{
			NumericBytes([]byte{0, 0, 0, 0, 0, 0, 0, 0, 1}),
			"numeric 0x010000000000000000",
		},
		testrow{
			List(Numeric(1), Numeric(2)),
			"list [numeric 1, numeric 2]",
		},
		testrow{List(), "list []"},
	}

	for i, row := range data {
		actual := row.In.String()
		if actual != row.Expected {
			t.Errorf("%s/%03d: expected %q, got %q", t.Name(), i, row.Expected, actual)
		}
	}
}
