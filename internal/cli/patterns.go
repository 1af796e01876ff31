package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PatternInfo describes one catalog rule.
type PatternInfo struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	Trigger       string `json:"trigger"`
	Parameterized bool   `json:"parameterized"`
	SQL           string `json:"sql"`
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the question patterns in precedence order",
		Long: `List the catalog rules in the order they are tried. The first rule
whose trigger matches a question wins.

Examples:
  quickdocs patterns
  quickdocs patterns --catalog ./configs/catalog.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatterns(rootOpts, cmd)
		},
	}
}

func runPatterns(opts *RootOptions, cmd *cobra.Command) error {
	catalog, err := opts.loadCatalog()
	if err != nil {
		return err
	}

	rules := catalog.Rules()
	patterns := make([]PatternInfo, len(rules))
	for i, r := range rules {
		sql := r.SQL
		if r.Parameterized() {
			sql = r.Template
		}
		patterns[i] = PatternInfo{
			Index:         i + 1,
			Name:          r.Name,
			Trigger:       r.Trigger,
			Parameterized: r.Parameterized(),
			SQL:           sql,
		}
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(patterns)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Catalog %s (%d rules)\n", catalog.Fingerprint()[:12], catalog.Len())
	for _, p := range patterns {
		kind := "fixed"
		if p.Parameterized {
			kind = "param"
		}
		fmt.Fprintf(w, "%2d. %-26s [%s] %s\n", p.Index, p.Name, kind, p.Trigger)
	}
	return nil
}
