package parse

import (
	"math/big"

	"github.com/LordHavelockVetinari/recursive-calculator/lex"
)

// Parse tokenizes and parses src into a Program.
func Parse(src string) (*Program, error) {
	toks, err := lex.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-tokenized source. toks must end with
// an EOF token, as lex.Tokenize guarantees.
func ParseTokens(toks []lex.Token) (*Program, error) {
	p := &parser{toks: toks}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != lex.EOF {
		return nil, errorf(p.peek().Pos, "unexpected character: %s", p.peek().Text)
	}
	return prog, nil
}

type parser struct {
	toks []lex.Token
	pos  int
}

func (p *parser) peek() lex.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() lex.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// skipNewlines consumes any run of Newline tokens, but only when
// newlines are currently whitespace (inside brackets, or immediately
// after '=').
func (p *parser) skipNewlines(nlWS bool) {
	if !nlWS {
		return
	}
	for p.peek().Type == lex.Newline {
		p.advance()
	}
}

func (p *parser) parseProgram() (*Program, error) {
	var stmts []Statement
	p.skipBlankLines()
	for p.peek().Type != lex.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		switch p.peek().Type {
		case lex.Newline:
			p.advance()
			p.skipBlankLines()
		case lex.EOF:
		default:
			return nil, errorf(p.peek().Pos, "unexpected character: %s", p.peek().Text)
		}
	}
	return &Program{Statements: stmts}, nil
}

func (p *parser) skipBlankLines() {
	for p.peek().Type == lex.Newline {
		p.advance()
	}
}

// parseStatement implements: statement ← expr ('=' expr)*
func (p *parser) parseStatement() (Statement, error) {
	first, err := p.parseExpr(false)
	if err != nil {
		return Statement{}, err
	}
	exprs := []Expr{first}
	for p.peek().Type == lex.Equals {
		p.advance()
		p.skipNewlines(true)
		next, err := p.parseExpr(false)
		if err != nil {
			return Statement{}, err
		}
		exprs = append(exprs, next)
	}
	if len(exprs) == 1 {
		return Statement{RHS: exprs[0]}, nil
	}
	return Statement{Targets: exprs[:len(exprs)-1], RHS: exprs[len(exprs)-1]}, nil
}

// parseExpr implements: expr ← term (('+'|'-') term)*
func (p *parser) parseExpr(nlWS bool) (Expr, error) {
	left, err := p.parseTerm(nlWS)
	if err != nil {
		return nil, err
	}
	for {
		p.skipNewlines(nlWS)
		save := p.pos
		var op byte
		switch p.peek().Type {
		case lex.Plus:
			op = '+'
		case lex.Minus:
			op = '-'
		default:
			p.pos = save
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseTerm(nlWS)
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, L: left, R: right, Pos: tok.Pos}
	}
}

// parseTerm implements: term ← factor (('*'|'/') factor)*
func (p *parser) parseTerm(nlWS bool) (Expr, error) {
	left, err := p.parseFactor(nlWS)
	if err != nil {
		return nil, err
	}
	for {
		p.skipNewlines(nlWS)
		save := p.pos
		var op byte
		switch p.peek().Type {
		case lex.Star:
			op = '*'
		case lex.Slash:
			op = '/'
		default:
			p.pos = save
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseFactor(nlWS)
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, L: left, R: right, Pos: tok.Pos}
	}
}

// parseFactor implements: factor ← ('+'|'-')* power
func (p *parser) parseFactor(nlWS bool) (Expr, error) {
	negate := false
	var pos lex.Pos
	for {
		switch p.peek().Type {
		case lex.Plus:
			pos = p.advance().Pos
			continue
		case lex.Minus:
			tok := p.advance()
			pos = tok.Pos
			negate = !negate
			continue
		}
		break
	}
	x, err := p.parsePower(nlWS)
	if err != nil {
		return nil, err
	}
	if negate {
		return &Neg{X: x, Pos: pos}, nil
	}
	return x, nil
}

// parsePower implements: power ← atom ('^' factor)?
// Recursing into parseFactor for the exponent, rather than parsePower,
// makes '^' right-associative: 2^2^3 parses as 2^(2^3).
func (p *parser) parsePower(nlWS bool) (Expr, error) {
	base, err := p.parseAtom(nlWS)
	if err != nil {
		return nil, err
	}
	p.skipNewlines(nlWS)
	save := p.pos
	if p.peek().Type != lex.Caret {
		p.pos = save
		return base, nil
	}
	tok := p.advance()
	exp, err := p.parseFactor(nlWS)
	if err != nil {
		return nil, err
	}
	return &BinOp{Op: '^', L: base, R: exp, Pos: tok.Pos}, nil
}

// parseAtom implements: atom ← number | identifier callArgs? | bracket expr bracket
func (p *parser) parseAtom(nlWS bool) (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lex.Number:
		p.advance()
		val, err := parseNumberLiteral(tok.Text)
		if err != nil {
			return nil, errorf(tok.Pos, "%s", err.Error())
		}
		return &NumberLit{Value: val, Pos: tok.Pos}, nil

	case lex.Identifier:
		p.advance()
		if args, ok, err := p.tryParseCallArgs(nlWS); err != nil {
			return nil, err
		} else if ok {
			return &Call{Name: tok.Text, Args: args, Pos: tok.Pos}, nil
		}
		return &Ident{Name: tok.Text, Pos: tok.Pos}, nil

	case lex.LeftParen, lex.LeftBrack, lex.LeftBrace:
		open := p.advance()
		p.skipNewlines(true)
		x, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		p.skipNewlines(true)
		if err := p.expectMatchingClose(open); err != nil {
			return nil, err
		}
		return x, nil

	default:
		return nil, errorf(tok.Pos, "expected a number, identifier or '(', got %s", tok)
	}
}

// tryParseCallArgs parses callArgs if the next token opens one, else
// reports ok=false leaving the parser position unchanged.
func (p *parser) tryParseCallArgs(nlWS bool) ([]Expr, bool, error) {
	save := p.pos
	p.skipNewlines(nlWS)
	switch p.peek().Type {
	case lex.LeftParen, lex.LeftBrack, lex.LeftBrace:
	default:
		p.pos = save
		return nil, false, nil
	}
	open := p.advance()
	p.skipNewlines(true)
	var args []Expr
	if !closesBracket(p.peek().Type) {
		for {
			arg, err := p.parseExpr(true)
			if err != nil {
				return nil, false, err
			}
			args = append(args, arg)
			p.skipNewlines(true)
			if p.peek().Type != lex.Comma {
				break
			}
			p.advance()
			p.skipNewlines(true)
			if closesBracket(p.peek().Type) {
				break // trailing comma
			}
		}
	}
	p.skipNewlines(true)
	if err := p.expectMatchingClose(open); err != nil {
		return nil, false, err
	}
	return args, true, nil
}

func closesBracket(t lex.Type) bool {
	return t == lex.RightParen || t == lex.RightBrack || t == lex.RightBrace
}

var matchingClose = map[lex.Type]lex.Type{
	lex.LeftParen: lex.RightParen,
	lex.LeftBrack: lex.RightBrack,
	lex.LeftBrace: lex.RightBrace,
}

func (p *parser) expectMatchingClose(open lex.Token) error {
	want := matchingClose[open.Type]
	got := p.peek()
	if got.Type != want {
		return errorf(got.Pos, "expected %s to match %s at byte %d, got %s", want, open.Type, open.Pos, got)
	}
	p.advance()
	return nil
}

// parseNumberLiteral converts "d1" or "d1.d2" into the exact rational
// d1 + d2 * 10^-len(d2).
func parseNumberLiteral(text string) (*big.Rat, error) {
	intPart := text
	fracPart := ""
	for i, c := range text {
		if c == '.' {
			intPart = text[:i]
			fracPart = text[i+1:]
			break
		}
	}
	digits := intPart + fracPart
	n := new(big.Int)
	if _, ok := n.SetString(digits, 10); !ok {
		return nil, errorf(0, "malformed number literal %q", text)
	}
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
	return new(big.Rat).SetFrac(n, denom), nil
}
