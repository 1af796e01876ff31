package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewAskCommand creates the ask command.
func NewAskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question",
		Long: `Translate one plain-English question into SQL, run it and print the
results. Words after the command are joined with spaces, so quoting the
question is optional.

Exit codes:
  0 - Question answered
  1 - No pattern matched, or the database rejected the query
  2 - Command error (database not found, invalid catalog, etc.)

Examples:
  quickdocs ask "Show all customers"
  quickdocs ask How many documents has Rajesh Kumar submitted?
  quickdocs ask "List all pending processes" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(rootOpts, cmd, strings.Join(args, " "))
		},
	}
	return cmd
}

func runAsk(opts *RootOptions, cmd *cobra.Command, question string) error {
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

	out := p.ProcessQuery(ctx, question)
	f := opts.formatter(cmd)

	if out.Failed() {
		code := errorCode(out.Err)
		if opts.Format == "json" {
			if err := f.encode(CLIResponse{
				Status:    "error",
				Error:     &CLIError{Code: code, Message: out.Explanation},
				RequestID: out.RequestID,
			}); err != nil {
				return err
			}
		} else {
			writeOutcome(cmd.OutOrStdout(), out)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("query failed [%s]", code))
	}

	f.VerboseLog("request %s matched rule %s", out.RequestID, out.Rule)

	if opts.Format == "json" {
		return f.encode(CLIResponse{
			Status:    "ok",
			Data:      newAnswerData(question, out),
			RequestID: out.RequestID,
		})
	}

	writeOutcome(cmd.OutOrStdout(), out)
	return nil
}
