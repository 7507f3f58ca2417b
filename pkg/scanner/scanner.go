// Package scanner turns C-subset source text into an ordered sequence of
// classified lexemes.
//
// At each cursor position the rules of a Registry are tried in priority
// order and the first one that matches wins; there is no longest-match
// comparison between categories. Matched whitespace and block comments are
// then dropped by a Filter.
package scanner

import (
	"fmt"
	"sync"
	"unicode/utf8"
)

// Scanner holds the state of a single scan. It is not safe for concurrent
// use; create one per input.
type Scanner struct {
	input    string
	position int
	line     int
	column   int
	registry *Registry
	filter   *Filter
}

// NewScanner creates a scanner over input using the default registry and
// filter.
func NewScanner(input string) *Scanner {
	return NewScannerWithRules(input, DefaultRegistry(), DefaultFilter())
}

// NewScannerWithRegistry creates a scanner with a custom registry and the
// default filter.
func NewScannerWithRegistry(input string, registry *Registry) *Scanner {
	return NewScannerWithRules(input, registry, DefaultFilter())
}

// NewScannerWithRules creates a scanner with a custom registry and filter.
func NewScannerWithRules(input string, registry *Registry, filter *Filter) *Scanner {
	return &Scanner{
		input:    input,
		line:     1,
		column:   1,
		registry: registry,
		filter:   filter,
	}
}

// Scan tokenises the whole input and returns the filtered tokens. On error
// no tokens are returned.
func (s *Scanner) Scan() ([]*Token, error) {
	tokens := make([]*Token, 0)
	for s.position < len(s.input) {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = s.filter.Process(tok, tokens)
	}
	return tokens, nil
}

// Matches tokenises the whole input without filtering. The texts of the
// returned tokens concatenate back to the input.
func (s *Scanner) Matches() ([]*Token, error) {
	tokens := make([]*Token, 0)
	for s.position < len(s.input) {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// next matches one lexeme at the cursor and advances past it.
func (s *Scanner) next() (*Token, error) {
	rest := s.input[s.position:]
	start := s.here()
	category, n, ok := s.registry.match(rest)
	if !ok {
		r, _ := utf8.DecodeRuneInString(rest)
		return nil, &UnrecognizedCharacterError{
			Char:     r,
			Offset:   s.position,
			Position: start,
			Reason:   diagnose(rest),
		}
	}
	s.advance(n)
	return NewToken(rest[:n], category, Span{Start: start, End: s.here()}), nil
}

func (s *Scanner) here() Position {
	return Position{Line: s.line, Col: s.column, Offset: s.position}
}

func (s *Scanner) advance(n int) {
	for i := 0; i < n && s.position < len(s.input); i++ {
		if s.input[s.position] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.position++
	}
}

// Scan tokenises source with the default registry and filter.
func Scan(source string) ([]*Token, error) {
	return NewScanner(source).Scan()
}

// ScanWithRegistry tokenises source with a custom registry and the default
// filter.
func ScanWithRegistry(source string, registry *Registry) ([]*Token, error) {
	return NewScannerWithRegistry(source, registry).Scan()
}

// ScanAll scans independent sources concurrently against a shared registry
// and filter. Results are in input order; the returned error is the first
// failure in input order, in which case no results are returned.
func ScanAll(sources []string, registry *Registry, filter *Filter) ([][]*Token, error) {
	results := make([][]*Token, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		i, src := i, src
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = NewScannerWithRules(src, registry, filter).Scan()
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
	}
	return results, nil
}
