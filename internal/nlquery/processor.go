package nlquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/roach88/quickdocs/internal/ir"
)

// DefaultTimeout bounds each store round-trip.
const DefaultTimeout = 30 * time.Second

const tracerName = "github.com/roach88/quickdocs/internal/nlquery"

// Store is what the processor needs from the relational store.
// *store.Store satisfies it.
type Store interface {
	Schema(ctx context.Context) (ir.SchemaMap, error)
	Execute(ctx context.Context, query string, args ...any) (ir.Result, error)
}

// Outcome is the result of ProcessQuery.
//
// On failure SQL is empty, Results is empty (not nil) and Explanation reads
// "Error processing query: <message>". Callers that only need to detect
// failure can check SQL == "".
type Outcome struct {
	SQL         string
	Args        []any
	Results     ir.Result
	Explanation string

	// Rule is the matched rule's name, empty if nothing matched.
	Rule string

	// RequestID identifies this call in logs and traces.
	RequestID string

	// Err is the typed cause of a failure (a *QueryError), nil on success.
	Err error
}

// Failed reports whether the outcome is a fail-soft error.
func (o Outcome) Failed() bool {
	return o.SQL == ""
}

// Processor answers catalog questions against a store.
//
// Thread-safety: a Processor holds no mutable state after New returns and
// is safe for concurrent use.
type Processor struct {
	store   Store
	catalog *Catalog
	schema  ir.SchemaMap
	timeout time.Duration
	logger  *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
	ids     IDGenerator
}

// Option configures a Processor.
type Option func(*Processor)

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *Catalog) Option {
	return func(p *Processor) {
		if c != nil {
			p.catalog = c
		}
	}
}

// WithTimeout bounds each store round-trip. Values <= 0 are ignored.
func WithTimeout(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Processor) {
		if tp != nil {
			p.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithIDGenerator sets the request id generator. Defaults to UUIDv7.
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Processor) {
		if g != nil {
			p.ids = g
		}
	}
}

// New creates a Processor and reads the store's schema once.
// The schema is never refreshed.
func New(ctx context.Context, store Store, opts ...Option) (*Processor, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	p := &Processor{
		store:   store,
		catalog: DefaultCatalog(),
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
		ids:     UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(p)
	}

	sctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	schema, err := store.Schema(sctx)
	if err != nil {
		return nil, fmt.Errorf("introspect schema: %w", err)
	}
	p.schema = schema

	p.logger.Debug("processor ready",
		zap.Int("tables", len(schema)),
		zap.Int("rules", p.catalog.Len()),
		zap.String("catalog", p.catalog.Fingerprint()),
	)
	return p, nil
}

// Schema returns a copy of the schema read at construction.
func (p *Processor) Schema() ir.SchemaMap {
	out := make(ir.SchemaMap, len(p.schema))
	for table, cols := range p.schema {
		out[table] = append([]string(nil), cols...)
	}
	return out
}

// Catalog returns the catalog in use.
func (p *Processor) Catalog() *Catalog {
	return p.catalog
}

// ProcessQuery answers one question. It never returns an error; failures
// are folded into the Outcome.
func (p *Processor) ProcessQuery(ctx context.Context, raw string) Outcome {
	start := time.Now()
	requestID := p.ids.Generate()

	ctx, span := p.tracer.Start(ctx, "nlquery.ProcessQuery",
		trace.WithAttributes(attribute.String("quickdocs.request_id", requestID)),
	)
	defer span.End()

	log := p.logger.With(zap.String("request_id", requestID))

	normalized := Normalize(raw)
	log.Debug("question normalized", zap.String("raw", raw), zap.String("normalized", normalized))

	m, err := p.catalog.Match(normalized)
	if err != nil {
		var qe *QueryError
		if errors.As(err, &qe) {
			qe.Raw = raw
		}
		p.metrics.observe(noRule, outcomeNoMatch, time.Since(start))
		return p.fail(span, log, requestID, "", err)
	}

	span.SetAttributes(
		attribute.String("quickdocs.rule", m.Rule.Name),
		attribute.Int("quickdocs.rule_index", m.Index),
	)

	stmt := Render(m)
	log.Debug("statement rendered",
		zap.String("rule", m.Rule.Name),
		zap.String("sql", stmt.SQL),
		zap.Int("args", len(stmt.Args)),
	)

	if hits := inspectArgs(stmt.Args); len(hits) > 0 {
		for _, h := range hits {
			log.Warn("suspicious parameter bound",
				zap.String("rule", m.Rule.Name),
				zap.String("value", h.Value),
				zap.String("fingerprint", h.Fingerprint),
			)
		}
		p.metrics.flagSuspicious(m.Rule.Name, len(hits))
	}

	results, err := p.execute(ctx, stmt)
	if err != nil {
		p.metrics.observe(m.Rule.Name, outcomeError, time.Since(start))
		return p.fail(span, log, requestID, m.Rule.Name, newExecutionError(raw, normalized, stmt.SQL, err))
	}

	elapsed := time.Since(start)
	p.metrics.observe(m.Rule.Name, outcomeOK, elapsed)
	span.SetAttributes(attribute.Int("quickdocs.rows", len(results)))

	log.Info("query answered",
		zap.String("rule", m.Rule.Name),
		zap.Int("rows", len(results)),
		zap.Duration("duration", elapsed),
	)

	return Outcome{
		SQL:         stmt.SQL,
		Args:        stmt.Args,
		Results:     results,
		Explanation: Explain(raw, len(results)),
		Rule:        m.Rule.Name,
		RequestID:   requestID,
	}
}

// execute runs the statement under the configured timeout.
func (p *Processor) execute(ctx context.Context, stmt Statement) (ir.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	results, err := p.store.Execute(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = ir.Result{}
	}
	return results, nil
}

func (p *Processor) fail(span trace.Span, log *zap.Logger, requestID, rule string, err error) Outcome {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	log.Warn("query failed", zap.String("rule", rule), zap.Error(err))

	return Outcome{
		Results:     ir.Result{},
		Explanation: failureExplanation(err),
		Rule:        rule,
		RequestID:   requestID,
		Err:         err,
	}
}
