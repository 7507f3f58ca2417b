package scanner

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"
)

// Definition adapts a Registry and Filter to participle's lexer.Definition,
// so a participle grammar can refer to tokens as @KEYWORD, @IDENTIFIER and so
// on.
type Definition struct {
	registry *Registry
	filter   *Filter
	symbols  map[string]lexer.TokenType
}

var (
	_ lexer.Definition       = (*Definition)(nil)
	_ lexer.StringDefinition = (*Definition)(nil)
)

// NewDefinition creates a participle lexer definition. Nil arguments fall
// back to the defaults.
func NewDefinition(registry *Registry, filter *Filter) *Definition {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if filter == nil {
		filter = DefaultFilter()
	}
	symbols := map[string]lexer.TokenType{"EOF": lexer.EOF}
	for _, c := range Categories() {
		symbols[string(c)] = TokenTypeOf(c)
	}
	return &Definition{registry: registry, filter: filter, symbols: symbols}
}

// TokenTypeOf returns the participle token type used for a category.
func TokenTypeOf(c Category) lexer.TokenType {
	return lexer.EOF - 1 - lexer.TokenType(c.Priority())
}

// Symbols implements lexer.Definition.
func (d *Definition) Symbols() map[string]lexer.TokenType {
	return d.symbols
}

// Lex implements lexer.Definition.
func (d *Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return d.LexString(filename, string(data))
}

// LexString implements lexer.StringDefinition.
func (d *Definition) LexString(filename string, input string) (lexer.Lexer, error) {
	tokens, err := NewScannerWithRules(input, d.registry, d.filter).Scan()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &participleLexer{filename: filename, tokens: tokens, end: endOf(input)}, nil
}

type participleLexer struct {
	filename string
	tokens   []*Token
	next     int
	end      Position
}

func (l *participleLexer) Next() (lexer.Token, error) {
	if l.next >= len(l.tokens) {
		return lexer.EOFToken(l.position(l.end)), nil
	}
	tok := l.tokens[l.next]
	l.next++
	return lexer.Token{
		Type:  TokenTypeOf(tok.Type),
		Value: tok.Text,
		Pos:   l.position(tok.Span.Start),
	}, nil
}

func (l *participleLexer) position(p Position) lexer.Position {
	return lexer.Position{Filename: l.filename, Offset: p.Offset, Line: p.Line, Column: p.Col}
}

// endOf returns the position just past the end of input.
func endOf(input string) Position {
	s := NewScanner(input)
	s.advance(len(input))
	return s.here()
}
