package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"finsem-hq/bizgate/pkg/bizmeta/typeexpr"
	"finsem-hq/bizgate/pkg/cli"
)

var parseFlags struct {
	format string
}

var parseCmd = &cobra.Command{
	Use:   "parse EXPR...",
	Short: "Parse value_type expressions",
	Long: `Parse value_type expressions and print their canonical form and tree.

The grammar accepts scalars (string, int, decimal, boolean, date,
datetime), entity names, unions joined with '|', json<object:NS>,
json<array:T> and ref:<code>. Whitespace is not allowed.

The command exits 2 if any expression is invalid.

Examples:
  bizgate parse 'int|string'
  bizgate parse 'json<array:json<object:company.branch>>'
  bizgate parse --format json 'ref:company.base.name'`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseExpressions,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseFlags.format, "format", "text", "output format: text, json")
}

// ParseResult is the outcome of parsing one expression.
type ParseResult struct {
	Input     string    `json:"input"`
	Valid     bool      `json:"valid"`
	Canonical string    `json:"canonical,omitempty"`
	Refs      []string  `json:"refs,omitempty"`
	Tree      *TypeNode `json:"tree,omitempty"`
	Error     string    `json:"error,omitempty"`
	Offset    int       `json:"offset,omitempty"`
}

// TypeNode is one node of a parsed expression.
type TypeNode struct {
	Kind     string     `json:"kind"`
	Value    string     `json:"value,omitempty"`
	Children []TypeNode `json:"children,omitempty"`
}

func parseExpressions(cmd *cobra.Command, args []string) error {
	return runParse(cmd.OutOrStdout(), args, parseFlags.format)
}

func runParse(w io.Writer, exprs []string, format string) error {
	results := make([]ParseResult, 0, len(exprs))
	valid := true
	for _, text := range exprs {
		r := parseOne(text)
		valid = valid && r.Valid
		results = append(results, r)
	}

	switch format {
	case "json":
		if err := (&cli.JSONFormatter{Indent: true}).FormatTo(w, results); err != nil {
			return err
		}
	case "text":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeParseResult(w, r)
		}
	default:
		return fmt.Errorf("invalid format %q (must be one of: text, json)", format)
	}

	if !valid {
		return &cli.ExitError{Code: cli.ExitCodeGateFailed}
	}
	return nil
}

func parseOne(text string) ParseResult {
	expr, err := typeexpr.Parse(text)
	if err != nil {
		r := ParseResult{Input: text, Error: err.Error()}
		var se *typeexpr.SyntaxError
		if errors.As(err, &se) {
			r.Offset = se.Offset
		}
		return r
	}
	tree := typeTree(expr)
	return ParseResult{
		Input:     text,
		Valid:     true,
		Canonical: expr.String(),
		Refs:      typeexpr.Refs(expr),
		Tree:      &tree,
	}
}

func typeTree(e typeexpr.Expr) TypeNode {
	n := TypeNode{Kind: e.Kind().String()}
	switch v := e.(type) {
	case typeexpr.Scalar:
		n.Value = string(v.Name)
	case typeexpr.EntityRef:
		n.Value = v.Name
	case typeexpr.Object:
		n.Value = v.Namespace
	case typeexpr.TypeRef:
		n.Value = v.Code
	case typeexpr.Array:
		n.Children = []TypeNode{typeTree(v.Elem)}
	case typeexpr.Union:
		for _, m := range v.Members {
			n.Children = append(n.Children, typeTree(m))
		}
	}
	return n
}

func writeParseResult(w io.Writer, r ParseResult) {
	if !r.Valid {
		fmt.Fprintf(w, "error: %s\n", r.Error)
		fmt.Fprintf(w, "  %s\n  %s^\n", r.Input, strings.Repeat(" ", r.Offset))
		return
	}
	fmt.Fprintln(w, r.Canonical)
	writeTree(w, *r.Tree, 1)
}

func writeTree(w io.Writer, n TypeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Value != "" {
		fmt.Fprintf(w, "%s%s %s\n", indent, n.Kind, n.Value)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, n.Kind)
	}
	for _, c := range n.Children {
		writeTree(w, c, depth+1)
	}
}
