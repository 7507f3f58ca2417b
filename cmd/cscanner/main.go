package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spicery/cscanner/pkg/export"
	"github.com/spicery/cscanner/pkg/scanner"
)

const (
	version = "0.1.0"
	usage   = `cscanner - A lexical scanner for a C-like language subset

Usage:
  cscanner [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <file>        Input file (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --format <name>       Output format: jsonl, csv or listing (defaults to jsonl)
  --rules <file>        YAML rules file for custom scanning rules (optional)
  --make-rules          Generate default rules YAML to stdout
  --exit0               Exit with code 0 even on scan errors (suppress stderr)

Examples:
  cscanner                                     # Read from stdin, write to stdout
  cscanner --input code.cpp                    # Read from file, write to stdout
  cscanner --input code.cpp --format csv --output tokens.csv
  cscanner --input code.cpp --format listing   # Human-readable listing
  cscanner --rules custom.yaml --input code.cpp
  cscanner --make-rules                        # Generate default rules configuration
  echo "int x = 3;" | cscanner

By default the scanner outputs one JSON token object per line.
`
)

func main() {
	var showHelp, showVersion, exit0, makeRules bool
	var inputFile, outputFile, rulesFile, formatName string

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&exit0, "exit0", false, "Exit with code 0 even on errors")
	flag.BoolVar(&makeRules, "make-rules", false, "Generate default rules YAML")
	flag.StringVar(&inputFile, "input", "", "Input file (defaults to stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&rulesFile, "rules", "", "YAML rules file (optional)")
	flag.StringVar(&formatName, "format", string(export.JSONLines), "Output format")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("cscanner version %s\n", version)
		os.Exit(0)
	}

	if makeRules {
		if err := generateDefaultConfig(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating default rules: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Reject any positional arguments
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	format, err := export.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var input string
	if inputFile == "" {
		input, err = readFromStdin()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
			os.Exit(1)
		}
	} else {
		input, err = readFromFile(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", inputFile, err)
			os.Exit(1)
		}
	}

	// Load rules if specified
	var s *scanner.Scanner
	if rulesFile != "" {
		rules, err := scanner.LoadRulesFile(rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rules file '%s': %v\n", rulesFile, err)
			os.Exit(1)
		}

		registry, filter, err := scanner.ApplyRulesToDefaults(rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error applying rules: %v\n", err)
			os.Exit(1)
		}
		s = scanner.NewScannerWithRules(input, registry, filter)
	} else {
		s = scanner.NewScanner(input)
	}

	tokens, scanErr := s.Scan()
	if scanErr != nil {
		if exit0 {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Scan error: %v\n", scanErr)
		os.Exit(1)
	}

	var output io.Writer
	var outputCloser io.Closer

	if outputFile == "" {
		output = os.Stdout
	} else {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
		output = file
		outputCloser = file
	}

	if err := export.Write(output, format, tokens); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing tokens: %v\n", err)
		os.Exit(1)
	}

	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
		if format == export.CSV {
			fmt.Fprintf(os.Stderr, "Tokens have been successfully extracted and saved to '%s'.\n", outputFile)
		}
	}
}

// readFromStdin reads all input from stdin.
func readFromStdin() (string, error) {
	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// readFromFile reads the contents of a file.
func readFromFile(filename string) (string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// generateDefaultConfig writes the default rules in YAML format.
func generateDefaultConfig(w io.Writer) error {
	yamlBytes, err := scanner.DefaultRulesFile().Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(yamlBytes)
	return err
}
