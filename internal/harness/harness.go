package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/roach88/quickdocs/internal/nlquery"
	"github.com/roach88/quickdocs/internal/store"
	"github.com/roach88/quickdocs/internal/testutil"
)

// config holds Run options.
type config struct {
	logger *zap.Logger
}

// Option configures Run.
type Option func(*config)

// WithLogger sets the logger passed to the store and processor.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes a scenario against a fresh, seeded SQLite database.
//
// Execution flow:
//  1. Create a temporary database and load the demo data
//  2. Load the scenario's catalog, if it names one
//  3. Ask every step's question in order
//  4. Check each step's expectations
//
// A non-nil error means the scenario could not be run at all; failed
// expectations are reported through Result.Errors.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	dir, err := os.MkdirTemp("", "quickdocs-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("create scenario dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(store.DriverSQLite, filepath.Join(dir, "scenario.db"), store.WithLogger(cfg.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario store: %w", err)
	}
	defer st.Close()

	if err := st.Seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed scenario store: %w", err)
	}

	procOpts := []nlquery.Option{
		nlquery.WithLogger(cfg.logger),
		nlquery.WithIDGenerator(testutil.NewSequenceGenerator(scenario.Name)),
	}
	if scenario.Catalog != "" {
		catalog, err := nlquery.LoadCatalogFile(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		procOpts = append(procOpts, nlquery.WithCatalog(catalog))
	}

	p, err := nlquery.New(ctx, st, procOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create processor: %w", err)
	}

	return RunWithProcessor(ctx, p, scenario), nil
}

// RunWithProcessor asks every step's question with p and checks the
// expectations. The caller owns p's store and its contents.
func RunWithProcessor(ctx context.Context, p *nlquery.Processor, scenario *Scenario) *Result {
	result := NewResult(scenario.Name)

	for i, step := range scenario.Steps {
		out := p.ProcessQuery(ctx, step.Ask)

		result.Steps = append(result.Steps, StepResult{
			Question:    step.Ask,
			Rule:        out.Rule,
			SQL:         out.SQL,
			Args:        out.Args,
			Explanation: out.Explanation,
			Rows:        len(out.Results),
			Results:     out.Results,
		})

		if step.Expect == nil {
			continue
		}
		for _, msg := range checkExpect(*step.Expect, out) {
			result.AddError(fmt.Sprintf("steps[%d] %q: %s", i, step.Ask, msg))
		}
	}

	return result
}
