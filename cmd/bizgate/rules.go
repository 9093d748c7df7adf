package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/rules"
	"finsem-hq/bizgate/pkg/cli"
)

var rulesFlags struct {
	mode   string
	format string
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules each gate runs",
	Long: `List every rule ID with its category, the gates that run it and a
short description. With --mode only the rules of that gate are listed.

Rule IDs are the keys of gate.severity in bizgate.yaml.

Examples:
  bizgate rules
  bizgate rules --mode publish --format json`,
	Args: cobra.NoArgs,
	RunE: listRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesFlags.mode, "mode", "", "only list the rules of this gate: import, publish")
	rulesCmd.Flags().StringVar(&rulesFlags.format, "format", "text", "output format: text, json")
}

// RuleListing describes one rule ID.
type RuleListing struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Gates       []string `json:"gates"`
	Description string   `json:"description"`
}

func listRules(cmd *cobra.Command, args []string) error {
	return runRules(cmd.OutOrStdout(), rulesFlags.mode, rulesFlags.format)
}

func runRules(w io.Writer, mode, format string) error {
	listing, err := ruleListing(mode)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return (&cli.JSONFormatter{Indent: true}).FormatTo(w, listing)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "RULE\tCATEGORY\tGATES\tDESCRIPTION")
		for _, l := range listing {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Category, strings.Join(l.Gates, ","), l.Description)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("invalid format %q (must be one of: text, json)", format)
	}
}

// ruleListing returns the catalog entries run by mode, or by either gate
// when mode is empty.
func ruleListing(mode string) ([]RuleListing, error) {
	modes := []rules.Mode{rules.ModeImport, rules.ModePublish}
	if mode != "" {
		m, err := rules.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		modes = []rules.Mode{m}
	}

	gates := make(map[errors.RuleID][]string)
	for _, m := range []rules.Mode{rules.ModeImport, rules.ModePublish} {
		for _, id := range rules.RuleIDs(m) {
			gates[id] = append(gates[id], string(m))
		}
	}

	selected := make(map[errors.RuleID]bool)
	for _, m := range modes {
		for _, id := range rules.RuleIDs(m) {
			selected[id] = true
		}
	}

	listing := make([]RuleListing, 0, len(errors.Catalog))
	for _, info := range errors.Catalog {
		if !selected[info.ID] {
			continue
		}
		listing = append(listing, RuleListing{
			ID:          string(info.ID),
			Category:    string(info.Category),
			Gates:       gates[info.ID],
			Description: info.Description,
		})
	}
	return listing, nil
}
