package main

import (
	"bytes"
	"testing"

	"github.com/spicery/cscanner/pkg/scanner"
)

func TestGenerateDefaultConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := generateDefaultConfig(&buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rules, err := scanner.ParseRules(buf.Bytes())
	if err != nil {
		t.Fatalf("Generated rules do not parse: %v\n%s", err, buf.String())
	}
	if _, _, err := scanner.ApplyRulesToDefaults(rules); err != nil {
		t.Errorf("Generated rules do not apply: %v", err)
	}
	if len(rules.Discard) != 2 {
		t.Errorf("Expected 2 discard rules, got %+v", rules.Discard)
	}
}
