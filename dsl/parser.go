package dsl

import (
	"fmt"
	"strconv"

	"github.com/mfeller/verdict"
)

// Parse compiles the expression source into a Tree. Any token sequence
// outside the grammar yields a *verdict.ParseError carrying the offending
// position and a reason. Parsing performs no evaluation and needs no
// FactContext.
func Parse(source string) (*Tree, error) {
	p := &parser{lex: lexer{src: source}}
	p.advance()

	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokEOF {
		return nil, p.errorf("unexpected %s after expression", p.tok)
	}
	return &Tree{Root: root, Source: source}, nil
}

// parser is a recursive-descent parser with one token of lookahead.
type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &verdict.ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.typ == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "OR", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.tok.typ == tokAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "AND", Left: left, Right: right}
	}
	return left, nil
}

// parseComparison parses at most one comparison; chained comparisons such
// as a < b < c are not part of the grammar.
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	var op string
	switch p.tok.typ {
	case tokEq:
		op = "=="
	case tokNeq:
		op = "!="
	case tokGte:
		op = ">="
	case tokLte:
		op = "<="
	case tokGt:
		op = ">"
	case tokLt:
		op = "<"
	default:
		return left, nil
	}

	p.advance()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.tok.typ == tokNot {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: "NOT", Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.tok.typ {
	case tokNumber:
		n, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", p.tok.text)
		}
		p.advance()
		return Literal{Value: n}, nil

	case tokString:
		s := p.tok.text
		p.advance()
		return Literal{Value: s}, nil

	case tokTrue:
		p.advance()
		return Literal{Value: true}, nil

	case tokFalse:
		p.advance()
		return Literal{Value: false}, nil

	case tokLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.typ != tokRParen {
			return nil, p.errorf("expected ) but found %s", p.tok)
		}
		p.advance()
		return inner, nil

	case tokIdent:
		return p.parsePathOrCall()

	case tokIllegal:
		return nil, p.errorf("%s", p.tok.text)

	default:
		return nil, p.errorf("expected a value but found %s", p.tok)
	}
}

// parsePathOrCall parses a dotted identifier chain, turning it into a Call
// when an argument list follows. Method calls take a single receiver
// identifier; a bare identifier followed by arguments calls a bound
// callable directly.
func (p *parser) parsePathOrCall() (Node, error) {
	segments := []string{p.tok.text}
	p.advance()

	for p.tok.typ == tokDot {
		p.advance()
		if p.tok.typ != tokIdent {
			return nil, p.errorf("expected a member name after . but found %s", p.tok)
		}
		segments = append(segments, p.tok.text)
		p.advance()
	}

	if p.tok.typ != tokLParen {
		return Path{Root: segments[0], Members: segments[1:]}, nil
	}

	var receiver, method string
	switch len(segments) {
	case 1:
		method = segments[0]
	case 2:
		receiver, method = segments[0], segments[1]
	default:
		return nil, p.errorf("method calls take a single receiver identifier")
	}

	p.advance()
	var args []Node
	if p.tok.typ != tokRParen {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok.typ != tokComma {
				break
			}
			p.advance()
		}
	}
	if p.tok.typ != tokRParen {
		return nil, p.errorf("expected ) but found %s", p.tok)
	}
	p.advance()

	return Call{Receiver: receiver, Method: method, Args: args}, nil
}
