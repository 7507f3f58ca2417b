package scanner

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// DefaultKeywords is the closed keyword set recognised by the default registry.
var DefaultKeywords = []string{
	"for", "while", "if", "else", "return",
	"int", "float", "char", "double", "void", "endl",
}

// Default recognition patterns, keyed by category. KEYWORD is derived from
// DefaultKeywords and OPERATOR is matched by operatorMatcher, so the pattern
// shown for it is descriptive only.
var defaultPatterns = map[Category]string{
	Identifier:       `[A-Za-z_][A-Za-z0-9_]*`,
	NumericConstant:  `[0-9]+(?:\.[0-9]+)?(?:e[+-]?[0-9]+)?`,
	CharConstant:     `'.'`,
	String:           `"[^"\n]*"`,
	Operator:         `[+\-*/=<>!]+`,
	SpecialCharacter: `[()\[\]{};,]`,
	LineComment:      `//[^\n]*`,
	BlockComment:     `/\*(?s:.*?)\*/`,
	Whitespace:       `[ \t\r\n]+`,
}

// matcher reports the length of a match anchored at the start of src, or 0.
type matcher interface {
	match(src string) int
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) match(src string) int {
	loc := m.re.FindStringIndex(src)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return loc[1]
}

// operatorMatcher matches a maximal run of operator characters, stopping in
// front of a "//" or "/*" so that comments starting next to an operator (or
// at the cursor) are left for the comment rules.
type operatorMatcher struct{}

func (operatorMatcher) match(src string) int {
	n := 0
	for n < len(src) && strings.IndexByte("+-*/=<>!", src[n]) >= 0 {
		if src[n] == '/' && n+1 < len(src) && (src[n+1] == '/' || src[n+1] == '*') {
			break
		}
		n++
	}
	return n
}

// Rule pairs a category with its recognition rule. Rules are immutable once
// built.
type Rule struct {
	Category Category
	Pattern  string
	Keywords []string // only set for keyword rules
	matcher  matcher
}

// Match returns the length of the match of the rule anchored at the start of
// src, or 0 when the rule does not match there. A rule never reports an
// empty match.
func (r Rule) Match(src string) int {
	if r.matcher == nil {
		return 0
	}
	return r.matcher.match(src)
}

// NewPatternRule compiles a regular expression rule for the given category.
// The pattern is anchored at the scan cursor and must not match the empty
// string.
func NewPatternRule(category Category, pattern string) (Rule, error) {
	if !category.Valid() {
		return Rule{}, fmt.Errorf("unknown category '%s'", category)
	}
	if pattern == "" {
		return Rule{}, fmt.Errorf("empty pattern for category %s", category)
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid pattern for category %s: %w", category, err)
	}
	if re.MatchString("") {
		return Rule{}, fmt.Errorf("pattern for category %s matches the empty string", category)
	}
	return Rule{Category: category, Pattern: pattern, matcher: regexMatcher{re}}, nil
}

// NewKeywordRule builds a KEYWORD rule that matches any of the given words as
// a whole word, never as the prefix of a longer identifier.
func NewKeywordRule(words []string) (Rule, error) {
	if len(words) == 0 {
		return Rule{}, fmt.Errorf("keyword rule needs at least one keyword")
	}
	sorted := make([]string, len(words))
	copy(sorted, words)
	// Longest first so that a keyword never shadows a longer one it prefixes.
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		if w == "" {
			return Rule{}, fmt.Errorf("empty keyword")
		}
		quoted[i] = regexp.QuoteMeta(w)
	}
	rule, err := NewPatternRule(Keyword, `(?:`+strings.Join(quoted, "|")+`)\b`)
	if err != nil {
		return Rule{}, err
	}
	rule.Keywords = append([]string(nil), words...)
	return rule, nil
}

func newOperatorRule() Rule {
	return Rule{Category: Operator, Pattern: defaultPatterns[Operator], matcher: operatorMatcher{}}
}

func mustPatternRule(category Category) Rule {
	rule, err := NewPatternRule(category, defaultPatterns[category])
	if err != nil {
		panic(fmt.Sprintf("Invalid default rule: %v", err))
	}
	return rule
}

// Registry is the ordered list of recognition rules consulted at every
// cursor position, highest priority first. A Registry is read-only after
// construction and may be shared between concurrent scans.
type Registry struct {
	rules []Rule
}

// NewRegistry validates and returns a registry. Rules must appear in
// category priority order with no category repeated; categories may be
// omitted.
func NewRegistry(rules ...Rule) (*Registry, error) {
	last := -1
	for _, rule := range rules {
		p := rule.Category.Priority()
		if p < 0 {
			return nil, fmt.Errorf("unknown category '%s'", rule.Category)
		}
		if p == last {
			return nil, fmt.Errorf("category %s is defined more than once", rule.Category)
		}
		if p < last {
			return nil, fmt.Errorf("category %s is out of priority order", rule.Category)
		}
		if rule.matcher == nil {
			return nil, fmt.Errorf("rule for category %s has no matcher", rule.Category)
		}
		last = p
	}
	return &Registry{rules: append([]Rule(nil), rules...)}, nil
}

// Build constructs the default registry: the ten categories in priority
// order, KEYWORD before IDENTIFIER so that keywords win.
func Build() *Registry {
	keywords, err := NewKeywordRule(DefaultKeywords)
	if err != nil {
		panic(fmt.Sprintf("Invalid default rule: %v", err))
	}
	rules := []Rule{keywords}
	for _, c := range Categories()[1:] {
		if c == Operator {
			rules = append(rules, newOperatorRule())
			continue
		}
		rules = append(rules, mustPatternRule(c))
	}
	registry, err := NewRegistry(rules...)
	if err != nil {
		panic(fmt.Sprintf("Invalid default rules: %v", err))
	}
	return registry
}

var defaultRegistry = sync.OnceValue(Build)

// DefaultRegistry returns a shared instance of the default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Rules returns a copy of the registered rules in priority order.
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Rule returns the rule registered for a category.
func (r *Registry) Rule(category Category) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.Category == category {
			return rule, true
		}
	}
	return Rule{}, false
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// match tries every rule in priority order against src and returns the first
// that matches.
func (r *Registry) match(src string) (Category, int, bool) {
	for _, rule := range r.rules {
		if n := rule.Match(src); n > 0 {
			return rule.Category, n, true
		}
	}
	return "", 0, false
}

// replace returns a copy of the registry with the rule for rule.Category
// swapped out, or inserted in its priority slot if it was absent.
func (r *Registry) replace(rule Rule) (*Registry, error) {
	out := make([]Rule, 0, len(r.rules)+1)
	inserted := false
	for _, existing := range r.rules {
		switch {
		case existing.Category == rule.Category:
			out = append(out, rule)
			inserted = true
			continue
		case !inserted && existing.Category.Priority() > rule.Category.Priority():
			out = append(out, rule)
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, rule)
	}
	return NewRegistry(out...)
}
