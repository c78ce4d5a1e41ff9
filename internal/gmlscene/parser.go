package gmlscene

// Parser is a straightforward recursive-descent reader over the
// scanner's token stream: one token of lookahead (curr), no
// backtracking. The grammar has only two compound shapes — arrays and
// functions — both delimited and recursive, so a single parseTokenList
// helper handles both bodies.

import (
	"fmt"
	"strconv"
	"strings"
)

type Parser struct {
	lexer *Scanner
	curr  LexerToken
}

func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

// advance returns the current lookahead token and pulls the next one
// off the scanner.
func (p *Parser) advance() LexerToken {
	tok := p.curr
	p.curr = p.lexer.NextToken()
	return tok
}

// expect checks the lookahead token against kind and, if it matches,
// consumes it; otherwise it reports the mismatch without advancing.
func (p *Parser) expect(kind TokenKind) error {
	if p.curr.Type != kind {
		return fmt.Errorf("expected %s, got %s", kind, p.curr.Type)
	}
	p.advance()
	return nil
}

func (p *Parser) Parse() (TokenList, error) {
	p.advance()
	list, err := p.parseTokenList()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s, expected end of input", p.curr.Type)
	}
	return list, nil
}

// parseTokenList reads zero or more TokenGroups in sequence; it is
// used both for a top-level program and for the body of an array or
// function, stopping as soon as the lookahead can't start another
// group (the caller is responsible for checking what follows).
func (p *Parser) parseTokenList() (TokenList, error) {
	var list TokenList
	for startsTokenGroup(p.curr.Type) {
		group, err := p.parseTokenGroup()
		if err != nil {
			return nil, err
		}
		list = append(list, group)
	}
	return list, nil
}

func startsTokenGroup(kind TokenKind) bool {
	switch kind {
	case TokenLBracket, TokenLCurly,
		TokenIdent, TokenInt, TokenFloat, TokenString, TokenBinder, TokenBoolean:
		return true
	default:
		return false
	}
}

func (p *Parser) parseTokenGroup() (TokenGroup, error) {
	switch p.curr.Type {
	case TokenLBracket:
		return p.parseArray()
	case TokenLCurly:
		return p.parseFunction()
	default:
		return p.parseScalar()
	}
}

// parseScalar handles every TokenGroup that isn't an array or
// function: identifiers, binders, and the three literal kinds.
func (p *Parser) parseScalar() (TokenGroup, error) {
	switch p.curr.Type {
	case TokenIdent:
		return &Identifier{Name: p.advance().Literal}, nil
	case TokenInt:
		return p.parseInt()
	case TokenFloat:
		return p.parseFloat()
	case TokenString:
		return &StringLiteral{Value: p.advance().Literal}, nil
	case TokenBinder:
		return p.parseBinder()
	case TokenBoolean:
		return p.parseBool()
	default:
		return nil, fmt.Errorf("unexpected token: %s", p.curr.Type)
	}
}

func (p *Parser) parseBinder() (*Binder, error) {
	tok := p.advance()
	if !strings.HasPrefix(tok.Literal, "/") {
		return nil, fmt.Errorf("binder must start with /, got %s", tok.Type)
	}
	return &Binder{Name: tok.Literal[1:]}, nil
}

func (p *Parser) parseFloat() (TokenGroup, error) {
	tok := p.advance()
	val, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, fmt.Errorf("could not parse number: %s", tok.Literal)
	}
	return &FloatLiteral{Value: val}, nil
}

func (p *Parser) parseInt() (TokenGroup, error) {
	tok := p.advance()
	val, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("could not parse number: %s", tok.Literal)
	}
	return &IntLiteral{Value: val}, nil
}

func (p *Parser) parseBool() (TokenGroup, error) {
	tok := p.advance()
	val, err := strconv.ParseBool(tok.Literal)
	if err != nil {
		return nil, fmt.Errorf("could not parse boolean: %s", tok.Literal)
	}
	return &BoolLiteral{Value: val}, nil
}

func (p *Parser) parseArray() (TokenGroup, error) {
	if err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}
	elems, err := p.parseTokenList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return &Array{Elements: elems}, nil
}

func (p *Parser) parseFunction() (TokenGroup, error) {
	if err := p.expect(TokenLCurly); err != nil {
		return nil, err
	}
	body, err := p.parseTokenList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRCurly); err != nil {
		return nil, err
	}
	return &Function{Body: body}, nil
}
