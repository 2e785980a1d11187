package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/metrics"
	"github.com/agbru/limbkit/internal/workload"
)

// ProgressBufferMultiplier sizes the progress channel per worker so slow
// displays rarely make a strategy skip an update.
const ProgressBufferMultiplier = 5

// progressSteps is the number of progress updates per strategy run.
const progressSteps = 20

var tracer = otel.Tracer("github.com/agbru/limbkit/internal/orchestration")

// ExecOptions configures ExecuteStrategies and RunChecks.
type ExecOptions struct {
	// Workers bounds concurrent runs. Zero means unbounded.
	Workers int
	// Recorder receives timings and mismatch counts when non-nil.
	Recorder *metrics.Recorder
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

func (o ExecOptions) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// ExecuteStrategies runs every strategy over every case concurrently and
// returns one result per strategy, in the order given.
//
// Parameters:
//   - ctx: Cancels the runs between cases.
//   - strategies: The strategies to run.
//   - cases: The shared workload. Strategies must not modify it.
//   - opts: Concurrency, metrics and logging options.
//   - progressReporter: Displays progress (NullProgressReporter for quiet mode).
//   - out: The writer for progress output.
//
// Returns:
//   - []StrategyResult: The result of each strategy.
func ExecuteStrategies(ctx context.Context, strategies []Strategy, cases []workload.Case, opts ExecOptions, progressReporter ProgressReporter, out io.Writer) []StrategyResult {
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	results := make([]StrategyResult, len(strategies))
	progressChan := make(chan ProgressUpdate, len(strategies)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(strategies), out)

	for i, s := range strategies {
		g.Go(func() error {
			results[i] = runStrategy(ctx, i, s, cases, progressChan, opts)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return results
}

func runStrategy(ctx context.Context, index int, s Strategy, cases []workload.Case, progressChan chan<- ProgressUpdate, opts ExecOptions) (res StrategyResult) {
	ctx, span := tracer.Start(ctx, "mod_limb."+s.Name(), trace.WithAttributes(
		attribute.String("strategy", s.Name()),
		attribute.Int("cases", len(cases)),
	))
	defer span.End()

	res = StrategyResult{
		Name:       s.Name(),
		Remainders: make([]limbs.Limb, len(cases)),
		Skipped:    make([]bool, len(cases)),
	}
	report := func(v float64) {
		select {
		case progressChan <- ProgressUpdate{WorkerIndex: index, Value: v}:
		default:
		}
	}
	step := max(1, len(cases)/progressSteps)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = apperrors.StrategyError{Strategy: s.Name(), Cause: fmt.Errorf("panic: %v", r)}
		}
		res.Duration = time.Since(start)
		finishStrategy(span, opts, res)
	}()

	for i, c := range cases {
		if i%step == 0 {
			if err := ctx.Err(); err != nil {
				res.Err = apperrors.StrategyError{Strategy: s.Name(), Cause: err}
				return res
			}
			report(float64(i) / float64(len(cases)))
		}
		if !s.Accepts(len(c.Xs), c.D) {
			res.Skipped[i] = true
			continue
		}
		res.Remainders[i] = s.ModLimb(c.Xs, c.D)
	}
	report(1)
	return res
}

func finishStrategy(span trace.Span, opts ExecOptions, res StrategyResult) {
	span.SetAttributes(attribute.Int("covered", res.Covered()))
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	if opts.Recorder != nil {
		opts.Recorder.ObserveStrategy("mod_limb", res.Name, res.Duration)
	}
	opts.logger().Debug().
		Str("strategy", res.Name).
		Int("covered", res.Covered()).
		Dur("duration", res.Duration).
		Err(res.Err).
		Msg("strategy finished")
}

// Comparison summarizes the agreement of every strategy with the reference.
type Comparison struct {
	// Mismatches counts the disagreeing cases per strategy.
	Mismatches map[string]int
	// Err is the first failure: a StrategyError, or a MismatchError naming
	// every strategy that disagrees on the first bad case.
	Err error
}

// CompareResults checks every successful strategy against the reference
// strategy, case by case, ignoring skipped cases.
func CompareResults(results []StrategyResult, cases []workload.Case) Comparison {
	cmp := Comparison{Mismatches: make(map[string]int)}
	var ref *StrategyResult
	for i := range results {
		if results[i].Name == ReferenceStrategy {
			ref = &results[i]
		}
	}
	switch {
	case ref == nil:
		cmp.Err = fmt.Errorf("reference strategy %q did not run", ReferenceStrategy)
		return cmp
	case ref.Err != nil:
		cmp.Err = ref.Err
		return cmp
	}

	firstCase := -1
	var culprits []string
	for _, res := range results {
		if res.Err != nil {
			if cmp.Err == nil {
				cmp.Err = res.Err
			}
			continue
		}
		first := -1
		for i := range cases {
			if res.Skipped[i] || res.Remainders[i] == ref.Remainders[i] {
				continue
			}
			cmp.Mismatches[res.Name]++
			if first < 0 {
				first = i
			}
		}
		switch {
		case first < 0:
		case firstCase < 0 || first < firstCase:
			firstCase, culprits = first, []string{res.Name}
		case first == firstCase:
			culprits = append(culprits, res.Name)
		}
	}
	if firstCase >= 0 {
		sort.Strings(culprits)
		cmp.Err = apperrors.MismatchError{
			Operation:  "mod_limb",
			Case:       firstCase,
			Length:     len(cases[firstCase].Xs),
			Strategies: culprits,
		}
	}
	return cmp
}

// AnalyzeComparisonResults sorts the results by duration, presents them,
// compares them and prints the global status.
//
// Returns:
//   - error: nil when every strategy agrees with the reference, otherwise
//     the first failure (see Comparison.Err).
func AnalyzeComparisonResults(results []StrategyResult, cases []workload.Case, presenter ResultPresenter, out io.Writer) error {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
	presenter.PresentComparisonTable(results, out)

	cmp := CompareResults(results, cases)
	var mismatch apperrors.MismatchError
	switch {
	case cmp.Err == nil:
		fmt.Fprintf(out, "\nGlobal Status: Success. All strategies agree on %d cases.\n", len(cases))
	case errors.As(cmp.Err, &mismatch):
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v\n", cmp.Err)
	default:
		fmt.Fprintf(out, "\nGlobal Status: Failure. %v\n", cmp.Err)
	}
	return cmp.Err
}

// AnalyzeChecks presents the cross-check results and returns the first
// failure.
func AnalyzeChecks(checks []CheckResult, presenter ResultPresenter, out io.Writer) error {
	presenter.PresentChecks(checks, out)
	for _, c := range checks {
		if c.Err != nil {
			return c.Err
		}
	}
	return nil
}
