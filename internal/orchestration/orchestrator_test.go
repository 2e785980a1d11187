package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/metrics"
	"github.com/agbru/limbkit/internal/workload"
)

type fakePresenter struct {
	mu      sync.Mutex
	results []StrategyResult
	checks  []CheckResult
}

func (p *fakePresenter) PresentComparisonTable(results []StrategyResult, _ io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append([]StrategyResult(nil), results...)
}

func (p *fakePresenter) PresentChecks(checks []CheckResult, _ io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checks = append([]CheckResult(nil), checks...)
}

type countingReporter struct {
	mu      sync.Mutex
	updates int
}

func (r *countingReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range ch {
		r.mu.Lock()
		r.updates++
		r.mu.Unlock()
	}
}

func testCases() []workload.Case {
	return workload.Generate(workload.Options{Seed: 11, Lengths: []int{1, 2, 5, 17}, Class: workload.Any, Rounds: 12})
}

func TestExecuteStrategies(t *testing.T) {
	t.Parallel()
	reg := DefaultRegistry(limbs.DefaultModThresholds())
	strategies, err := reg.Select(nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := testCases()
	rec := metrics.NewRecorder()
	reporter := &countingReporter{}

	results := ExecuteStrategies(context.Background(), strategies, cases, ExecOptions{Workers: 3, Recorder: rec}, reporter, io.Discard)

	if len(results) != len(strategies) {
		t.Fatalf("got %d results, want %d", len(results), len(strategies))
	}
	for i, res := range results {
		if res.Name != strategies[i].Name() {
			t.Errorf("result %d is %q, want %q", i, res.Name, strategies[i].Name())
		}
		if res.Err != nil {
			t.Errorf("%s: unexpected error %v", res.Name, res.Err)
		}
		if len(res.Remainders) != len(cases) || len(res.Skipped) != len(cases) {
			t.Errorf("%s: result slices have wrong length", res.Name)
		}
	}
	if cmp := CompareResults(results, cases); cmp.Err != nil {
		t.Errorf("CompareResults: %v", cmp.Err)
	}
	if reporter.updates == 0 {
		t.Error("no progress updates delivered")
	}
	mfs, err := rec.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(mfs) == 0 {
		t.Error("no metrics recorded")
	}
}

func TestExecuteStrategiesSkipsRejectedCases(t *testing.T) {
	t.Parallel()
	reg := DefaultRegistry(limbs.DefaultModThresholds())
	s, err := reg.Get("small-normalized")
	if err != nil {
		t.Fatal(err)
	}
	cases := workload.Generate(workload.Options{Seed: 2, Lengths: []int{3}, Class: workload.Unnormalized, Rounds: 5})
	res := ExecuteStrategies(context.Background(), []Strategy{s}, cases, ExecOptions{}, NullProgressReporter{}, io.Discard)[0]
	if res.Covered() != 0 {
		t.Errorf("Covered() = %d, want 0 for unnormalized divisors", res.Covered())
	}
}

func TestExecuteStrategiesRecoversPanic(t *testing.T) {
	t.Parallel()
	boom := NewStrategy("boom", nil, func([]limbs.Limb, limbs.Limb) limbs.Limb { panic("kaboom") })
	res := ExecuteStrategies(context.Background(), []Strategy{boom}, testCases(), ExecOptions{}, NullProgressReporter{}, io.Discard)[0]
	var se apperrors.StrategyError
	if !errors.As(res.Err, &se) || se.Strategy != "boom" {
		t.Fatalf("Err = %v, want StrategyError for boom", res.Err)
	}
}

func TestExecuteStrategiesCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewStrategy(ReferenceStrategy, nil, limbs.ModLimbNaive)
	res := ExecuteStrategies(ctx, []Strategy{s}, testCases(), ExecOptions{}, NullProgressReporter{}, io.Discard)[0]
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", res.Err)
	}
	if got := apperrors.ExitCodeFor(res.Err); got != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", got, apperrors.ExitErrorCanceled)
	}
}

func TestCompareResultsDetectsMismatch(t *testing.T) {
	t.Parallel()
	cases := testCases()
	bogus := NewStrategy("bogus", nil, func(xs []limbs.Limb, d limbs.Limb) limbs.Limb {
		if len(xs) == 5 {
			return limbs.ModLimbNaive(xs, d) ^ 1
		}
		return limbs.ModLimbNaive(xs, d)
	})
	strategies := []Strategy{bogus, NewStrategy(ReferenceStrategy, nil, limbs.ModLimbNaive)}
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	results := ExecuteStrategies(context.Background(), strategies, cases, ExecOptions{Logger: &logger}, NullProgressReporter{}, io.Discard)

	cmp := CompareResults(results, cases)
	if cmp.Mismatches["bogus"] != 12 {
		t.Errorf("bogus mismatches = %d, want 12", cmp.Mismatches["bogus"])
	}
	if cmp.Mismatches[ReferenceStrategy] != 0 {
		t.Errorf("reference mismatches = %d, want 0", cmp.Mismatches[ReferenceStrategy])
	}
	var me apperrors.MismatchError
	if !errors.As(cmp.Err, &me) {
		t.Fatalf("Err = %v, want MismatchError", cmp.Err)
	}
	if me.Length != 5 || me.Case != 24 || len(me.Strategies) != 1 || me.Strategies[0] != "bogus" {
		t.Errorf("MismatchError = %+v", me)
	}
	if got := apperrors.ExitCodeFor(cmp.Err); got != apperrors.ExitErrorMismatch {
		t.Errorf("exit code = %d, want %d", got, apperrors.ExitErrorMismatch)
	}
}

func TestCompareResultsWithoutReference(t *testing.T) {
	t.Parallel()
	cmp := CompareResults([]StrategyResult{{Name: "alt2"}}, nil)
	if cmp.Err == nil {
		t.Error("expected an error without the reference strategy")
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	cases := testCases()
	results := []StrategyResult{
		{Name: ReferenceStrategy, Remainders: make([]limbs.Limb, len(cases)), Skipped: make([]bool, len(cases)), Duration: 3 * time.Millisecond},
		{Name: "fast", Remainders: make([]limbs.Limb, len(cases)), Skipped: make([]bool, len(cases)), Duration: time.Millisecond},
		{Name: "broken", Err: errors.New("boom")},
	}
	presenter := &fakePresenter{}
	var out bytes.Buffer
	err := AnalyzeComparisonResults(results, cases, presenter, &out)
	if err == nil || err.Error() != "boom" {
		t.Errorf("err = %v, want boom", err)
	}
	if len(presenter.results) != 3 || presenter.results[0].Name != "fast" || presenter.results[2].Name != "broken" {
		t.Errorf("results not sorted by duration with failures last: %+v", presenter.results)
	}
	if !strings.Contains(out.String(), "Global Status: Failure") {
		t.Errorf("output %q lacks failure status", out.String())
	}
}

func TestAnalyzeComparisonResultsSuccess(t *testing.T) {
	t.Parallel()
	cases := testCases()
	results := []StrategyResult{
		{Name: ReferenceStrategy, Remainders: make([]limbs.Limb, len(cases)), Skipped: make([]bool, len(cases))},
	}
	var out bytes.Buffer
	if err := AnalyzeComparisonResults(results, cases, &fakePresenter{}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Global Status: Success") {
		t.Errorf("output %q lacks success status", out.String())
	}
}

func TestAnalyzeChecks(t *testing.T) {
	t.Parallel()
	want := errors.New("bad")
	presenter := &fakePresenter{}
	err := AnalyzeChecks([]CheckResult{{Name: "a"}, {Name: "b", Err: want}}, presenter, io.Discard)
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
	if len(presenter.checks) != 2 {
		t.Errorf("presented %d checks, want 2", len(presenter.checks))
	}
}
