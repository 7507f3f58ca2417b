package scanner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file
type RulesFile struct {
	Keyword []KeywordRule `yaml:"keyword,omitempty"`
	Pattern []PatternRule `yaml:"pattern,omitempty"`
	Discard []DiscardRule `yaml:"discard,omitempty"`
}

// KeywordRule represents one reserved word
type KeywordRule struct {
	Text string `yaml:"text"`
}

// PatternRule replaces the recognition pattern of a category. The category
// keeps its priority slot.
type PatternRule struct {
	Category string `yaml:"category"`
	Regex    string `yaml:"regex"`
}

// DiscardRule names a category dropped from the output
type DiscardRule struct {
	Category string `yaml:"category"`
}

// LoadRulesFile loads and parses a YAML rules file
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in rules file '%s': %w", filename, err)
	}
	return rules, nil
}

// ParseRules parses the YAML text of a rules file.
func ParseRules(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// ApplyRulesToDefaults applies the rules from a RulesFile on top of the
// default registry and filter. Each non-empty section replaces the matching
// default wholesale.
func ApplyRulesToDefaults(rules *RulesFile) (*Registry, *Filter, error) {
	registry := Build()
	filter := DefaultFilter()

	// Apply keyword rules
	if len(rules.Keyword) > 0 {
		words := make([]string, 0, len(rules.Keyword))
		for _, rule := range rules.Keyword {
			words = append(words, rule.Text)
		}
		keywordRule, err := NewKeywordRule(words)
		if err != nil {
			return nil, nil, err
		}
		if registry, err = registry.replace(keywordRule); err != nil {
			return nil, nil, err
		}
	}

	// Apply pattern rules
	seen := make(map[Category]bool)
	for _, rule := range rules.Pattern {
		category, err := ParseCategory(rule.Category)
		if err != nil {
			return nil, nil, err
		}
		if seen[category] {
			return nil, nil, fmt.Errorf("category %s is defined in more than one pattern rule", category)
		}
		seen[category] = true
		if category == Keyword && len(rules.Keyword) > 0 {
			return nil, nil, fmt.Errorf("category %s is defined in both keyword and pattern rules", category)
		}

		// Re-stating the built-in pattern keeps the built-in rule.
		if existing, ok := registry.Rule(category); ok && existing.Pattern == rule.Regex {
			continue
		}
		patternRule, err := NewPatternRule(category, rule.Regex)
		if err != nil {
			return nil, nil, err
		}
		if registry, err = registry.replace(patternRule); err != nil {
			return nil, nil, err
		}
	}

	// Apply discard rules
	if len(rules.Discard) > 0 {
		categories := make([]Category, 0, len(rules.Discard))
		for _, rule := range rules.Discard {
			category, err := ParseCategory(rule.Category)
			if err != nil {
				return nil, nil, err
			}
			categories = append(categories, category)
		}
		var err error
		if filter, err = NewFilter(categories...); err != nil {
			return nil, nil, err
		}
	}

	return registry, filter, nil
}

// DefaultRulesFile describes the default registry and filter as a RulesFile.
func DefaultRulesFile() *RulesFile {
	return RulesFileFor(Build(), DefaultFilter())
}

// RulesFileFor describes a registry and filter as a RulesFile.
func RulesFileFor(registry *Registry, filter *Filter) *RulesFile {
	rulesFile := &RulesFile{}
	for _, rule := range registry.Rules() {
		if rule.Category == Keyword && rule.Keywords != nil {
			for _, w := range rule.Keywords {
				rulesFile.Keyword = append(rulesFile.Keyword, KeywordRule{Text: w})
			}
			continue
		}
		rulesFile.Pattern = append(rulesFile.Pattern, PatternRule{
			Category: string(rule.Category),
			Regex:    rule.Pattern,
		})
	}
	for _, c := range filter.Discarded() {
		rulesFile.Discard = append(rulesFile.Discard, DiscardRule{Category: string(c)})
	}
	return rulesFile
}

// Marshal renders the rules file as YAML text.
func (r *RulesFile) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	return out, nil
}
