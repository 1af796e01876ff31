package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/quickdocs/internal/nlquery"
)

const replBanner = `=== QuickDocs Natural Language Query Interface ===
Try queries like:
- Show all customers
- List all pending processes
- How many documents has Rajesh Kumar submitted?
- Which process has the most documents?
- Which customers are assigned to Home Loan Application?

Type 'quit' to exit.
`

const replPrompt = "Enter your query: "

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Ask questions interactively",
		Long: `Read questions from standard input, one per line, and answer each.

Blank lines are ignored. quit, exit or q (any case) ends the session, as
does end of input.

With --metrics-addr the Prometheus metrics for the session are served at
/metrics on that address.

Examples:
  quickdocs repl
  quickdocs repl --db ./quickdocs.db --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(rootOpts, cmd)
		},
	}

	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	return cmd
}

func runRepl(opts *RootOptions, cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	p, err := opts.newProcessor(ctx, st, nlquery.WithMetrics(nlquery.NewMetrics(reg)))
	if err != nil {
		return err
	}

	if addr := opts.settings().Metrics.Addr; addr != "" {
		_, stop, err := serveMetrics(addr, reg, opts.log())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to start metrics server", err)
		}
		defer stop()
	}

	return repl(ctx, p, cmd.InOrStdin(), cmd.OutOrStdout())
}

// repl runs the read-answer loop until a quit word or end of input.
func repl(ctx context.Context, p *nlquery.Processor, in io.Reader, w io.Writer) error {
	fmt.Fprint(w, replBanner+"\n")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(w, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if isQuit(question) {
			break
		}
		if question == "" {
			continue
		}

		writeOutcome(w, p.ProcessQuery(ctx, question))
		fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
		fmt.Fprintln(w)

		if ctx.Err() != nil {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}

func isQuit(s string) bool {
	switch strings.ToLower(s) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// serveMetrics serves reg at /metrics until the returned stop func is
// called. It returns the address actually bound.
func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	stop := func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}
	return ln.Addr().String(), stop, nil
}
