package expr

import "strings"

var (
	sumOps     = map[string]Op{"+": Add, "-": Sub}
	productOps = map[string]Op{"*": Mul, "/": Quo}
	compareOps = map[string]Op{"==": Eq, "!=": Ne, "<": Lt, "<=": Le, ">": Gt, ">=": Ge}
)

type parser struct {
	lex *lexer
	tok token
}

// Parse parses src into an expression tree. Errors are *SyntaxError.
func Parse(src string) (Node, error) {
	p := &parser{lex: &lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, &SyntaxError{Offset: 0, Msg: "empty expression"}
	}
	n, err := p.comparison()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) unexpected() error {
	if p.tok.kind == tokEOF {
		return &SyntaxError{Offset: p.tok.offset, Msg: "unexpected end of expression"}
	}
	return &SyntaxError{Offset: p.tok.offset, Msg: "unexpected " + quote(p.tok.text)}
}

func (p *parser) comparison() (Node, error) {
	x, err := p.sum()
	if err != nil {
		return nil, err
	}
	op, ok := compareOps[p.tok.text]
	if p.tok.kind != tokOp || !ok {
		return x, nil
	}
	offset := p.tok.offset
	if err := p.advance(); err != nil {
		return nil, err
	}
	y, err := p.sum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokOp {
		if _, chained := compareOps[p.tok.text]; chained {
			return nil, &SyntaxError{Offset: p.tok.offset, Msg: "comparisons cannot be chained"}
		}
	}
	return &Binary{Offset: offset, Op: op, X: x, Y: y}, nil
}

func (p *parser) sum() (Node, error) {
	return p.binary(sumOps, p.product)
}

func (p *parser) product() (Node, error) {
	return p.binary(productOps, p.unary)
}

func (p *parser) binary(ops map[string]Op, operand func() (Node, error)) (Node, error) {
	x, err := operand()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp {
		op, ok := ops[p.tok.text]
		if !ok {
			break
		}
		offset := p.tok.offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := operand()
		if err != nil {
			return nil, err
		}
		x = &Binary{Offset: offset, Op: op, X: x, Y: y}
	}
	return x, nil
}

func (p *parser) unary() (Node, error) {
	if p.tok.kind == tokOp && (p.tok.text == "-" || p.tok.text == "+") {
		offset, op := p.tok.offset, sumOps[p.tok.text]
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Offset: offset, Op: op, X: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Node, error) {
	t := p.tok
	switch {
	case t.kind == tokOp && t.text == "<":
		text, err := p.lex.rawLiteral(t.offset)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return newLiteral(t.offset, text), nil

	case t.kind == tokNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return numberLiteral(t), nil

	case t.kind == tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.sum()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return x, nil

	case t.kind == tokIdent:
		fn, ok := funcs[strings.ToLower(t.text)]
		if !ok {
			return nil, &SyntaxError{Offset: t.offset, Msg: "unknown function " + quote(t.text)}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		arg, err := p.sum()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &Call{Offset: t.offset, Func: fn, Arg: arg}, nil
	}
	return nil, p.unexpected()
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return p.unexpected()
	}
	return p.advance()
}

// numberLiteral turns "12" into 12/1 and "1.25" into 125/100. Leading zeros
// are dropped, so "0.3" is 3/10 and "007" is 7/1.
func numberLiteral(t token) *Literal {
	intPart, frac, _ := strings.Cut(t.text, ".")
	num := strings.TrimLeft(intPart+frac, "0")
	if num == "" {
		num = "0"
	}
	return &Literal{Offset: t.offset, Num: num, Den: "1" + strings.Repeat("0", len(frac))}
}
