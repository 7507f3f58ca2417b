package scanner

import (
	"encoding/json"
	"fmt"
)

// Position represents a location in the source text. Line and Col are
// 1-based, Offset is the 0-based byte offset.
type Position struct {
	Line   int `json:"line"`
	Col    int `json:"col"`
	Offset int `json:"-"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span represents the start and end positions of a token.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [4]int{s.Start.Line, s.Start.Col, s.End.Line, s.End.Col}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = Position{Line: arr[0], Col: arr[1]}
	s.End = Position{Line: arr[2], Col: arr[3]}
	return nil
}

// Token is a single classified lexeme. Text is exactly the matched source
// text, quotes and comment markers included.
type Token struct {
	Text string   `json:"text"`
	Type Category `json:"type"`
	Span Span     `json:"span"`
}

// NewToken creates a new token.
func NewToken(text string, category Category, span Span) *Token {
	return &Token{
		Text: text,
		Type: category,
		Span: span,
	}
}

func (t *Token) String() string {
	return fmt.Sprintf("(%s, %s)", t.Text, t.Type)
}
