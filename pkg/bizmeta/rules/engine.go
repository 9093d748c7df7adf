package rules

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"finsem-hq/bizgate/pkg/bizmeta/batch"
	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/record"
	"finsem-hq/bizgate/pkg/bizmeta/resolver"
)

// Config configures an Engine.
type Config struct {
	// Mode selects the rule set. Defaults to import.
	Mode Mode
	// MaxRefDepth bounds reference chains. Defaults to resolver.DefaultMaxDepth.
	MaxRefDepth int
	// Workers is the number of records evaluated in parallel.
	// Defaults to GOMAXPROCS; 1 evaluates serially.
	Workers int
	// Severities overrides the level of individual rule IDs.
	Severities Severities
}

// Engine runs a gate over record batches. An Engine holds no per-run
// state and may be reused and shared.
type Engine struct {
	cfg   Config
	rules []Rule
}

// NewEngine creates an engine, applying defaults to cfg.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeImport
	}
	if !cfg.Mode.IsValid() {
		return nil, fmt.Errorf("invalid mode %q", cfg.Mode)
	}
	if cfg.MaxRefDepth == 0 {
		cfg.MaxRefDepth = resolver.DefaultMaxDepth
	}
	if cfg.MaxRefDepth < 1 {
		return nil, fmt.Errorf("max ref depth must be at least 1, got %d", cfg.MaxRefDepth)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	return &Engine{
		cfg:   cfg,
		rules: ForMode(cfg.Mode),
	}, nil
}

// Mode returns the gate the engine runs.
func (e *Engine) Mode() Mode {
	return e.cfg.Mode
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Run validates records and returns the report. It never stops early:
// every rule runs for every record.
//
// The batch index is built first; records are then evaluated in
// parallel, each into its own buffer, and the buffers are concatenated
// in record order, so the report does not depend on Workers.
func (e *Engine) Run(records []record.Record) *Report {
	started := time.Now()

	b := batch.New(records)
	res := resolver.New(b, resolver.WithMaxDepth(e.cfg.MaxRefDepth))

	buffers := make([]*errors.ViolationList, b.Len())

	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i := 0; i < b.Len(); i++ {
		g.Go(func() error {
			buffers[i] = e.evaluate(b, res, i)
			return nil
		})
	}
	// Rule checks do not return errors.
	_ = g.Wait()

	merged := errors.NewViolationList()
	for _, buf := range buffers {
		for _, v := range buf.Violations {
			if e.cfg.Severities.apply(v) {
				merged.Add(v)
			}
		}
	}

	report := newReport(uuid.NewString(), e.cfg.Mode, b.Len(), merged, started)
	report.ResolverStats = res.Stats()
	return report
}

func (e *Engine) evaluate(b *batch.Batch, res *resolver.Resolver, i int) *errors.ViolationList {
	r := b.At(i)
	s := &Subject{
		Index:  i,
		Record: r,
		Batch:  b,
		Type:   analyze(r, res),
	}

	out := errors.NewViolationList()
	for _, rule := range e.rules {
		rule.Check(s, out)
	}
	return out
}
