package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// TableInfo is one table in the schema output.
type TableInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the tables and columns of the database",
		Long: `Print every user table with its columns in declaration order, as read
when the query processor starts.

Examples:
  quickdocs schema
  quickdocs schema --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, cmd)
		},
	}
}

func runSchema(opts *RootOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := opts.newProcessor(ctx, st)
	if err != nil {
		return err
	}

	schema := p.Schema()
	tables := make([]TableInfo, 0, len(schema))
	for _, name := range schema.Tables() {
		tables = append(tables, TableInfo{Name: name, Columns: schema[name]})
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(tables)
	}

	w := cmd.OutOrStdout()
	if len(tables) == 0 {
		fmt.Fprintln(w, "No tables found.")
		return nil
	}
	for _, t := range tables {
		fmt.Fprintf(w, "%s: %s\n", t.Name, strings.Join(t.Columns, ", "))
	}
	return nil
}
