package compiler

import (
	"github.com/chronos-tachyon/go-pact/pacttype"
	"github.com/chronos-tachyon/go-pact/pactvm"
)

// MaxParameters is the number of inputs a 4-bit operand index can name.
const MaxParameters = 16

var keywords = map[string]bool{
	"given":      true,
	"parameters": true,
	"define":     true,
	"as":         true,
	"must":       true,
	"be":         true,
	"not":        true,
	"equal":      true,
	"to":         true,
	"less":       true,
	"greater":    true,
	"than":       true,
	"one":        true,
	"of":         true,
	"and":        true,
	"or":         true,
}

type constant struct {
	idx uint8
	val pacttype.Value
}

type parser struct {
	lex *lexer
	tok token
	asm *pactvm.Assembler

	params map[string]uint8
	consts map[string]constant
}

// Compile translates a surface-language document into a Contract.
func Compile(src string) (*pactvm.Contract, error) {
	p := &parser{
		lex:    newLexer(src),
		asm:    pactvm.NewAssembler(),
		params: make(map[string]uint8),
		consts: make(map[string]constant),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	return p.asm.Finish()
}

// CompileToBytes translates a surface-language document into an encoded
// contract blob.
func CompileToBytes(src string) ([]byte, error) {
	c, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return c.Encode(), nil
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return p.lex.errorf(t.line, t.col, format, args...)
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) skipBreaks() error {
	for p.tok.kind == tokBreak {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// expectWord consumes the given keyword or fails.
func (p *parser) expectWord(w string) error {
	if p.tok.kind != tokWord || p.tok.text != w {
		return p.errorf(p.tok, "expected %q, found %s", w, p.tok.describe())
	}
	return p.advance()
}

func (p *parser) atWord(w string) bool {
	return p.tok.kind == tokWord && p.tok.text == w
}

func (p *parser) endSentence() error {
	if p.tok.kind == tokEOF {
		return nil
	}
	if p.tok.kind != tokBreak {
		return p.errorf(p.tok, "expected end of sentence, found %s", p.tok.describe())
	}
	return p.advance()
}

func (p *parser) parseDocument() error {
	if err := p.skipBreaks(); err != nil {
		return err
	}
	if p.atWord("given") {
		if err := p.parseGiven(); err != nil {
			return err
		}
		if err := p.skipBreaks(); err != nil {
			return err
		}
	}
	for p.atWord("define") {
		if err := p.parseDefine(); err != nil {
			return err
		}
		if err := p.skipBreaks(); err != nil {
			return err
		}
	}
	for p.tok.kind != tokEOF {
		if err := p.parseSentence(); err != nil {
			return err
		}
		if err := p.skipBreaks(); err != nil {
			return err
		}
	}
	return nil
}

// parseGiven handles `given parameters $a, $b, ...`.
func (p *parser) parseGiven() error {
	if err := p.expectWord("given"); err != nil {
		return err
	}
	if err := p.expectWord("parameters"); err != nil {
		return err
	}
	for {
		t := p.tok
		if t.kind != tokParam {
			return p.errorf(t, "expected parameter name, found %s", t.describe())
		}
		if _, dup := p.params[t.text]; dup {
			return p.errorf(t, "parameter $%s declared twice", t.text)
		}
		if len(p.params) >= MaxParameters {
			return p.errorf(t, "too many parameters: only %d are addressable", MaxParameters)
		}
		p.params[t.text] = uint8(len(p.params))
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.endSentence()
}

// parseDefine handles `define NAME as <literal>`.
func (p *parser) parseDefine() error {
	if err := p.expectWord("define"); err != nil {
		return err
	}
	t := p.tok
	if t.kind != tokWord {
		return p.errorf(t, "expected constant name, found %s", t.describe())
	}
	if keywords[t.text] {
		return p.errorf(t, "%q is a reserved word", t.text)
	}
	if _, dup := p.consts[t.text]; dup {
		return p.errorf(t, "constant %s defined twice", t.text)
	}
	name := t.text
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectWord("as"); err != nil {
		return err
	}
	v, err := p.parseLiteral()
	if err != nil {
		return err
	}
	idx, aerr := p.asm.DeclareData(v)
	if aerr != nil {
		return p.errorf(t, "cannot store constant %s: %v", name, aerr)
	}
	p.consts[name] = constant{idx: idx, val: v}
	return p.endSentence()
}

// parseSentence handles one clause: assertions joined by `and` / `or`.
func (p *parser) parseSentence() error {
	for {
		if err := p.parseAssertion(); err != nil {
			return err
		}
		var conj pactvm.ConjOp
		switch {
		case p.atWord("and"):
			conj = pactvm.ConjAnd
		case p.atWord("or"):
			conj = pactvm.ConjOr
		default:
			return p.endSentence()
		}
		t := p.tok
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.asm.EmitConjunction(conj, false); err != nil {
			return p.errorf(t, "%v", err)
		}
	}
}

// parseAssertion handles `$x must [not] be <comparator> <operand>`.
func (p *parser) parseAssertion() error {
	t := p.tok
	if t.kind != tokParam {
		return p.errorf(t, "expected parameter name, found %s", t.describe())
	}
	lhs, ok := p.params[t.text]
	if !ok {
		return p.errorf(t, "unknown parameter $%s", t.text)
	}
	if err := p.advance(); err != nil {
		return err
	}

	if err := p.expectWord("must"); err != nil {
		return err
	}
	mustNot := false
	if p.atWord("not") {
		mustNot = true
		if err := p.advance(); err != nil {
			return err
		}
	}
	if err := p.expectWord("be"); err != nil {
		return err
	}

	cmp, baseNeg, err := p.parseComparator()
	if err != nil {
		return err
	}

	mode, rhs, err := p.parseOperand(cmp)
	if err != nil {
		return err
	}

	negate := mustNot != baseNeg
	if aerr := p.asm.EmitComparator(cmp, mode, negate, lhs, rhs); aerr != nil {
		return p.errorf(t, "%v", aerr)
	}
	return nil
}

// parseComparator recognizes one of the comparator phrases and returns the
// opcode plus whether the phrase lowers through the NOT bit: `less than` is
// NOT GTE and `less than or equal to` is NOT GT.
func (p *parser) parseComparator() (pacttype.Op, bool, error) {
	t := p.tok
	switch {
	case p.atWord("equal"):
		if err := p.advance(); err != nil {
			return 0, false, err
		}
		if err := p.expectWord("to"); err != nil {
			return 0, false, err
		}
		return pacttype.OpEq, false, nil

	case p.atWord("greater"):
		orEqual, err := p.parseThanPhrase()
		if err != nil {
			return 0, false, err
		}
		if orEqual {
			return pacttype.OpGte, false, nil
		}
		return pacttype.OpGt, false, nil

	case p.atWord("less"):
		orEqual, err := p.parseThanPhrase()
		if err != nil {
			return 0, false, err
		}
		if orEqual {
			return pacttype.OpGt, true, nil
		}
		return pacttype.OpGte, true, nil

	case p.atWord("one"):
		if err := p.advance(); err != nil {
			return 0, false, err
		}
		if err := p.expectWord("of"); err != nil {
			return 0, false, err
		}
		return pacttype.OpIn, false, nil
	}
	return 0, false, p.errorf(t, "expected a comparator phrase, found %s", t.describe())
}

// parseThanPhrase consumes `than [or equal to]` after `less` or `greater`.
func (p *parser) parseThanPhrase() (orEqual bool, err error) {
	if err := p.advance(); err != nil {
		return false, err
	}
	if err := p.expectWord("than"); err != nil {
		return false, err
	}
	// Directly after `than`, the word `or` can only begin `or equal to`;
	// a conjunction needs a right operand before it.
	if !p.atWord("or") {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	if err := p.expectWord("equal"); err != nil {
		return false, err
	}
	if err := p.expectWord("to"); err != nil {
		return false, err
	}
	return true, nil
}

// parseOperand handles the right-hand side of an assertion: a parameter, a
// defined constant, or a literal.
func (p *parser) parseOperand(cmp pacttype.Op) (pactvm.LoadMode, uint8, error) {
	t := p.tok

	if t.kind == tokParam {
		idx, ok := p.params[t.text]
		if !ok {
			return 0, 0, p.errorf(t, "unknown parameter $%s", t.text)
		}
		if cmp == pacttype.OpIn {
			return 0, 0, p.errorf(t, "the right operand of \"one of\" must be a list literal or constant")
		}
		if err := p.advance(); err != nil {
			return 0, 0, err
		}
		return pactvm.LoadInputVsInput, idx, nil
	}

	if t.kind == tokWord {
		if keywords[t.text] {
			return 0, 0, p.errorf(t, "expected an operand, found %s", t.describe())
		}
		c, ok := p.consts[t.text]
		if !ok {
			return 0, 0, p.errorf(t, "unknown constant %s", t.text)
		}
		if err := p.checkMembership(t, cmp, c.val); err != nil {
			return 0, 0, err
		}
		if err := p.advance(); err != nil {
			return 0, 0, err
		}
		return pactvm.LoadInputVsData, c.idx, nil
	}

	v, err := p.parseLiteral()
	if err != nil {
		return 0, 0, err
	}
	if err := p.checkMembership(t, cmp, v); err != nil {
		return 0, 0, err
	}
	idx, aerr := p.asm.DeclareData(v)
	if aerr != nil {
		return 0, 0, p.errorf(t, "cannot store literal: %v", aerr)
	}
	return pactvm.LoadInputVsData, idx, nil
}

func (p *parser) checkMembership(t token, cmp pacttype.Op, v pacttype.Value) error {
	if cmp == pacttype.OpIn && v.Kind != pacttype.KindList {
		return p.errorf(t, "the right operand of \"one of\" must be a list")
	}
	if cmp != pacttype.OpIn && v.Kind == pacttype.KindList {
		return p.errorf(t, "a list may only follow \"one of\"")
	}
	return nil
}

// parseLiteral handles an integer, string, or bracketed list literal.
func (p *parser) parseLiteral() (pacttype.Value, error) {
	t := p.tok
	switch t.kind {
	case tokInt:
		if err := p.advance(); err != nil {
			return pacttype.Value{}, err
		}
		return pacttype.Numeric(t.num), nil

	case tokString:
		if err := p.advance(); err != nil {
			return pacttype.Value{}, err
		}
		return pacttype.String(t.text), nil

	case tokLBracket:
		if err := p.advance(); err != nil {
			return pacttype.Value{}, err
		}
		var items []pacttype.Value
		if p.tok.kind != tokRBracket {
			for {
				et := p.tok
				item, err := p.parseLiteral()
				if err != nil {
					return pacttype.Value{}, err
				}
				if item.Kind == pacttype.KindList {
					return pacttype.Value{}, p.errorf(et, "lists do not nest")
				}
				if len(items) != 0 && item.Kind != items[0].Kind {
					return pacttype.Value{}, p.errorf(et, "list elements must share one type")
				}
				items = append(items, item)
				if p.tok.kind != tokComma {
					break
				}
				if err := p.advance(); err != nil {
					return pacttype.Value{}, err
				}
			}
		}
		if p.tok.kind != tokRBracket {
			return pacttype.Value{}, p.errorf(p.tok, "expected ']', found %s", p.tok.describe())
		}
		if err := p.advance(); err != nil {
			return pacttype.Value{}, err
		}
		return pacttype.List(items...), nil
	}
	return pacttype.Value{}, p.errorf(t, "expected a literal, found %s", t.describe())
}
