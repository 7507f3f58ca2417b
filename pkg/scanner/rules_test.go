package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create temp rules file: %v", err)
	}
	return filename
}

func TestLoadRulesFile(t *testing.T) {
	rulesContent := `keyword:
  - text: "struct"
  - text: "int"
pattern:
  - category: NUMERIC_CONSTANT
    regex: '0x[0-9a-fA-F]+|[0-9]+'
discard:
  - category: WHITESPACE
  - category: LINE_COMMENT`

	rules, err := LoadRulesFile(writeRulesFile(t, rulesContent))
	if err != nil {
		t.Fatalf("Failed to load rules file: %v", err)
	}

	if len(rules.Keyword) != 2 || rules.Keyword[0].Text != "struct" {
		t.Errorf("Expected keyword rules [struct int], got %+v", rules.Keyword)
	}
	if len(rules.Pattern) != 1 || rules.Pattern[0].Category != "NUMERIC_CONSTANT" {
		t.Errorf("Expected one NUMERIC_CONSTANT pattern rule, got %+v", rules.Pattern)
	}
	if len(rules.Discard) != 2 || rules.Discard[1].Category != "LINE_COMMENT" {
		t.Errorf("Expected discard rules [WHITESPACE LINE_COMMENT], got %+v", rules.Discard)
	}
}

func TestLoadRulesFileErrors(t *testing.T) {
	if _, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
	if _, err := LoadRulesFile(writeRulesFile(t, "keyword: [unclosed")); err == nil {
		t.Errorf("Expected an error for malformed YAML")
	}
}

func TestApplyRulesToDefaults(t *testing.T) {
	rules, err := ParseRules([]byte(`keyword:
  - text: "struct"
  - text: "int"
pattern:
  - category: NUMERIC_CONSTANT
    regex: '0x[0-9a-fA-F]+|[0-9]+'
discard:
  - category: WHITESPACE
  - category: LINE_COMMENT`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	registry, filter, err := ApplyRulesToDefaults(rules)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if registry.Len() != len(Categories()) {
		t.Errorf("Expected %d rules, got %d", len(Categories()), registry.Len())
	}

	tokens, err := NewScannerWithRules("struct s; // note\nint v = 0x1F; /* kept */ while", registry, filter).Scan()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkTokens(t, tokens, []expectedToken{
		{"struct", Keyword},
		{"s", Identifier},
		{";", SpecialCharacter},
		{"int", Keyword},
		{"v", Identifier},
		{"=", Operator},
		{"0x1F", NumericConstant},
		{";", SpecialCharacter},
		{"/* kept */", BlockComment},
		{"while", Identifier},
	})
}

func TestApplyRulesErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{"Unknown pattern category", "pattern:\n  - category: COMMENT\n    regex: '#.*'"},
		{"Empty-matching pattern", "pattern:\n  - category: IDENTIFIER\n    regex: '[a-z]*'"},
		{"Invalid regex", "pattern:\n  - category: STRING\n    regex: '\"[^\"'"},
		{"Duplicate pattern", "pattern:\n  - category: STRING\n    regex: '\"\"'\n  - category: STRING\n    regex: \"'.'\""},
		{"Keyword conflict", "keyword:\n  - text: if\npattern:\n  - category: KEYWORD\n    regex: 'if'"},
		{"Empty keyword", "keyword:\n  - text: ''"},
		{"Unknown discard category", "discard:\n  - category: NOISE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := ParseRules([]byte(tt.rules))
			if err != nil {
				t.Fatalf("Unexpected parse error: %v", err)
			}
			if _, _, err := ApplyRulesToDefaults(rules); err == nil {
				t.Errorf("Expected an error, but got none")
			}
		})
	}
}

func TestDefaultRulesFileRoundTrip(t *testing.T) {
	yamlBytes, err := DefaultRulesFile().Marshal()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rules, err := ParseRules(yamlBytes)
	if err != nil {
		t.Fatalf("Failed to parse generated rules: %v\n%s", err, yamlBytes)
	}
	if len(rules.Keyword) != len(DefaultKeywords) {
		t.Errorf("Expected %d keywords, got %d", len(DefaultKeywords), len(rules.Keyword))
	}
	if len(rules.Pattern) != len(Categories())-1 {
		t.Errorf("Expected %d pattern rules, got %d", len(Categories())-1, len(rules.Pattern))
	}

	registry, filter, err := ApplyRulesToDefaults(rules)
	if err != nil {
		t.Fatalf("Failed to apply generated rules: %v", err)
	}

	input := "int main() { x=/*c*/y; // done\n return 3.4e+6; }"
	want, err := Scan(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := NewScannerWithRules(input, registry, filter).Scan()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Text != want[i].Text || got[i].Type != want[i].Type {
			t.Errorf("Token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
