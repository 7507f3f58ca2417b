// Package export writes scanned token sequences in the formats consumed by
// downstream tools. None of the writers modify the tokens they are given.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spicery/cscanner/pkg/scanner"
)

// Format names an output format.
type Format string

const (
	JSONLines Format = "jsonl"
	CSV       Format = "csv"
	Listing   Format = "listing"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case JSONLines, CSV, Listing:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format '%s' (want jsonl, csv or listing)", name)
}

// Write writes tokens to w in the given format.
func Write(w io.Writer, format Format, tokens []*scanner.Token) error {
	switch format {
	case JSONLines:
		return WriteJSONLines(w, tokens)
	case CSV:
		return WriteCSV(w, tokens)
	case Listing:
		return WriteListing(w, tokens)
	}
	return fmt.Errorf("unknown output format '%s'", format)
}

// WriteJSONLines writes one JSON token object per line.
func WriteJSONLines(w io.Writer, tokens []*scanner.Token) error {
	for _, token := range tokens {
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes a Lexeme,Token_Type header followed by one row per token.
func WriteCSV(w io.Writer, tokens []*scanner.Token) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Lexeme", "Token_Type"}); err != nil {
		return err
	}
	for _, token := range tokens {
		if err := cw.Write([]string{token.Text, string(token.Type)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteListing writes a human-readable listing, one token per line with the
// lexeme padded to 20 characters.
func WriteListing(w io.Writer, tokens []*scanner.Token) error {
	for _, token := range tokens {
		if _, err := fmt.Fprintf(w, "%-20s → %s\n", token.Text, token.Type); err != nil {
			return err
		}
	}
	return nil
}
