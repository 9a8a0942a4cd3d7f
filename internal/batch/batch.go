// Package batch aligns many reads in parallel.
//
// Work is split into contiguous chunks and every chunk builds its own engine,
// so no scratch buffer is shared between goroutines. Only the parameters and
// the sequence source are shared, and both are read only.
package batch

import (
	"context"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/exascience/pargo/parallel"
	"github.com/google/uuid"
	"github.com/willf/bitset"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/aria-lang/readalign-go/internal/actions"
	"github.com/aria-lang/readalign-go/internal/alignment"
	"github.com/aria-lang/readalign-go/internal/sequence"
)

// Task is one read to align against a candidate template site.
type Task struct {
	Read              []byte
	TemplateID        string
	Start             int
	ReverseComplement bool
}

// Result is the outcome of one task. Actions is nil when the read did not
// align or the template could not be read.
type Result struct {
	Actions actions.Array
	Err     error
}

// Aligned reports whether the task produced an alignment.
func (r Result) Aligned() bool {
	return r.Actions != nil
}

// Report summarises a run. Results are in task order.
type Report struct {
	Run       uuid.UUID
	Results   []Result
	Aligned   *bitset.BitSet
	Unaligned int
	Failed    int
	Elapsed   time.Duration
}

// AlignedCount returns the number of tasks that aligned.
func (r *Report) AlignedCount() int {
	return int(r.Aligned.Count())
}

// EngineFactory builds an engine for one worker.
type EngineFactory func(p *alignment.Params) alignment.EditDistance

// Gotoh builds exact engines.
func Gotoh(p *alignment.Params) alignment.EditDistance { return alignment.NewGotoh(p) }

// HopStep builds heuristic engines with the default window.
func HopStep(p *alignment.Params) alignment.EditDistance {
	return alignment.NewHopStep(p, alignment.DefaultWindow)
}

// Chained builds engines that try hop-step under handoff before Gotoh.
func Chained(handoff int) EngineFactory {
	return func(p *alignment.Params) alignment.EditDistance {
		return alignment.NewChain(p, handoff)
	}
}

// Aligner runs tasks against templates from a source.
type Aligner struct {
	params   *alignment.Params
	source   sequence.Source
	engine   EngineFactory
	maxScore int
	grain    int
	logger   *zap.Logger
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithEngine selects the engine every worker builds. The default is Gotoh.
func WithEngine(f EngineFactory) Option {
	return func(a *Aligner) { a.engine = f }
}

// WithMaxScore bounds the score of reported alignments.
func WithMaxScore(score int) Option {
	return func(a *Aligner) { a.maxScore = score }
}

// WithGrain sets how many tasks a chunk holds. Zero lets the scheduler decide.
func WithGrain(n int) Option {
	return func(a *Aligner) { a.grain = n }
}

// WithLogger sets the run logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aligner) { a.logger = l }
}

// New returns an aligner for the given parameters and source.
func New(p *alignment.Params, src sequence.Source, opts ...Option) *Aligner {
	a := &Aligner{
		params:   p,
		source:   src,
		engine:   Gotoh,
		maxScore: math.MaxInt32,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Run aligns every task. Cancellation is noticed between chunks; a cancelled
// run returns the context error and no report.
func (a *Aligner) Run(ctx context.Context, tasks []Task) (*Report, error) {
	run := uuid.New()
	log := a.logger.With(zap.String("run", run.String()))
	log.Info("batch started", zap.Int("tasks", len(tasks)))

	start := time.Now()
	results := make([]Result, len(tasks))
	aligned := atomic.NewInt64(0)
	unaligned := atomic.NewInt64(0)
	failed := atomic.NewInt64(0)

	if len(tasks) > 0 {
		parallel.Range(0, len(tasks), a.chunks(len(tasks)), func(low, high int) {
			if ctx.Err() != nil {
				return
			}
			engine := a.engine(a.params)
			for i := low; i < high; i++ {
				res := a.align(engine, tasks[i])
				results[i] = res
				switch {
				case res.Err != nil:
					failed.Inc()
				case res.Aligned():
					aligned.Inc()
				default:
					unaligned.Inc()
				}
			}
		})
	}
	if err := ctx.Err(); err != nil {
		log.Warn("batch cancelled", zap.Error(err))
		return nil, err
	}

	report := &Report{
		Run:       run,
		Results:   results,
		Aligned:   bitset.New(uint(len(tasks))),
		Unaligned: int(unaligned.Load()),
		Failed:    int(failed.Load()),
		Elapsed:   time.Since(start),
	}
	for i, r := range results {
		if r.Aligned() {
			report.Aligned.Set(uint(i))
		}
	}

	rate := 0.0
	if secs := report.Elapsed.Seconds(); secs > 0 {
		rate = float64(len(tasks)) / secs
	}
	log.Info("batch finished",
		zap.Int("tasks", len(tasks)),
		zap.Int64("aligned", aligned.Load()),
		zap.Int("unaligned", report.Unaligned),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", report.Elapsed),
		zap.String("summary", humanize.Comma(aligned.Load())+" of "+humanize.Comma(int64(len(tasks)))+" aligned"),
		zap.String("rate", humanize.SI(rate, "reads/s")),
	)
	return report, nil
}

// chunks converts the grain into the chunk count pargo expects.
func (a *Aligner) chunks(n int) int {
	if a.grain <= 0 {
		return 0
	}
	return (n + a.grain - 1) / a.grain
}

func (a *Aligner) align(engine alignment.EditDistance, t Task) Result {
	template, err := a.source.Residues(t.TemplateID)
	if err != nil {
		return Result{Err: err}
	}
	rlen := len(t.Read)
	res, ok := engine.CalculateEditDistance(t.Read, rlen, template, t.Start, a.params.MaxShift(rlen), a.maxScore, t.ReverseComplement)
	if !ok {
		return Result{}
	}
	return Result{Actions: res}
}
