package scanner

import "fmt"

// Category is the lexical category assigned to a lexeme.
type Category string

const (
	Keyword          Category = "KEYWORD"
	Identifier       Category = "IDENTIFIER"
	NumericConstant  Category = "NUMERIC_CONSTANT"
	CharConstant     Category = "CHAR_CONSTANT"
	String           Category = "STRING"
	Operator         Category = "OPERATOR"
	SpecialCharacter Category = "SPECIAL_CHARACTER"
	LineComment      Category = "LINE_COMMENT"
	BlockComment     Category = "BLOCK_COMMENT"
	Whitespace       Category = "WHITESPACE"
)

// priorityOrder lists every category from highest to lowest priority.
// At any cursor position the rules are attempted in exactly this order.
var priorityOrder = [...]Category{
	Keyword,
	Identifier,
	NumericConstant,
	CharConstant,
	String,
	Operator,
	SpecialCharacter,
	LineComment,
	BlockComment,
	Whitespace,
}

// Categories returns all categories in priority order.
func Categories() []Category {
	out := make([]Category, len(priorityOrder))
	copy(out, priorityOrder[:])
	return out
}

// Priority returns the 0-based priority of the category, lowest value first,
// or -1 for an unknown category.
func (c Category) Priority() int {
	for i, p := range priorityOrder {
		if p == c {
			return i
		}
	}
	return -1
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c.Priority() >= 0
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a tag name such as "KEYWORD" into a Category.
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category '%s'", name)
	}
	return c, nil
}
