package scanner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedCharacter is matched (via errors.Is) by every
// *UnrecognizedCharacterError.
var ErrUnrecognizedCharacter = errors.New("unrecognized character")

// UnrecognizedCharacterError reports a cursor position at which no rule
// matches. The scan stops there.
type UnrecognizedCharacterError struct {
	Char     rune
	Offset   int // byte offset into the source
	Position Position
	Reason   string
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("tokenisation error at line %d, column %d: unrecognized character %q (offset %d): %s",
		e.Position.Line, e.Position.Col, e.Char, e.Offset, e.Reason)
}

func (e *UnrecognizedCharacterError) Is(target error) bool {
	return target == ErrUnrecognizedCharacter
}

// Reasons attached to an UnrecognizedCharacterError.
const (
	ReasonNoRule              = "no rule matches"
	ReasonUnterminatedString  = "unterminated string literal"
	ReasonMalformedChar       = "malformed character constant"
	ReasonUnterminatedComment = "unterminated block comment"
)

// diagnose explains why nothing matched at the start of rest. It only looks
// at the opening delimiter; the error kind is the same in every case.
func diagnose(rest string) string {
	switch {
	case strings.HasPrefix(rest, "/*"):
		return ReasonUnterminatedComment
	case strings.HasPrefix(rest, `"`):
		return ReasonUnterminatedString
	case strings.HasPrefix(rest, "'"):
		return ReasonMalformedChar
	default:
		return ReasonNoRule
	}
}
