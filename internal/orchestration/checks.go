package orchestration

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/float"
	"github.com/agbru/limbkit/internal/integer"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/natural"
	"github.com/agbru/limbkit/internal/workload"
)

// Check compares one kernel operation with math/big on a workload case. Run
// returns the name of the disagreeing implementation, or "" on agreement.
type Check struct {
	Name string
	Run  func(c workload.Case) string
}

// DefaultChecks returns the cross-checks of the verify command. The
// thresholds are those of the dispatching ModLimbWith.
func DefaultChecks(th limbs.ModThresholds) []Check {
	return []Check{
		{Name: "shr_round", Run: checkShrRound},
		{Name: "add_mul", Run: checkAddMul},
		{Name: "sub_mul", Run: checkSubMul},
		{Name: "eq_mod", Run: checkEqMod},
		{Name: "mod_limb_natural", Run: func(c workload.Case) string { return checkNaturalMod(c, th) }},
		{Name: "float_prec", Run: checkFloatPrec},
	}
}

func checkShrRound(c workload.Case) string {
	x := toBig(c.Xs)
	want, wantOrd, wantOK := shrRoundBig(x, c.Bits, c.Mode)

	got, o, ok := limbs.ShrRound(c.Xs, c.Bits, c.Mode)
	if ok != wantOK || (ok && (toBig(got).Cmp(want) != 0 || o != wantOrd)) {
		return "limbs.ShrRound"
	}
	if !wantOK {
		return ""
	}
	n, o := natural.FromLimbs(c.Xs).ShrRound(c.Bits, c.Mode)
	if n.ToBig().Cmp(want) != 0 || o != wantOrd || !n.IsValid() {
		return "natural.ShrRound"
	}

	neg := new(big.Int).Neg(x)
	want, wantOrd, wantOK = shrRoundBig(neg, c.Bits, c.Mode)
	if !wantOK {
		return ""
	}
	i, o := integer.FromSignAndAbs(true, natural.FromLimbs(c.Xs)).ShrRound(c.Bits, c.Mode)
	if i.ToBig().Cmp(want) != 0 || o != wantOrd || !i.IsValid() {
		return "integer.ShrRound"
	}
	return ""
}

func checkAddMul(c workload.Case) string {
	x, y, z := toBig(c.Xs), toBig(c.Ys), toBig(c.Zs)
	want := new(big.Int).Mul(y, z)
	want.Add(want, x)
	if toBig(limbs.AddMul(c.Xs, c.Ys, c.Zs)).Cmp(want) != 0 {
		return "limbs.AddMul"
	}
	if natural.FromLimbs(c.Xs).AddMul(natural.FromLimbs(c.Ys), natural.FromLimbs(c.Zs)).ToBig().Cmp(want) != 0 {
		return "natural.AddMul"
	}
	// -x + y·z exercises the sign change of the signed form.
	want.Sub(want, x).Sub(want, x)
	ix := integer.FromSignAndAbs(true, natural.FromLimbs(c.Xs))
	got := ix.AddMul(integer.FromNatural(natural.FromLimbs(c.Ys)), integer.FromNatural(natural.FromLimbs(c.Zs)))
	if got.ToBig().Cmp(want) != 0 || !got.IsValid() {
		return "integer.AddMul"
	}
	return ""
}

func checkSubMul(c workload.Case) string {
	x, y, z := toBig(c.Xs), toBig(c.Ys), toBig(c.Zs)
	want := new(big.Int).Mul(y, z)
	want.Sub(x, want)
	wantOK := want.Sign() >= 0

	got, ok := limbs.SubMul(c.Xs, c.Ys, c.Zs)
	if ok != wantOK || (ok && toBig(got).Cmp(want) != 0) {
		return "limbs.SubMul"
	}
	n, ok := natural.FromLimbs(c.Xs).CheckedSubMul(natural.FromLimbs(c.Ys), natural.FromLimbs(c.Zs))
	if ok != wantOK || (ok && n.ToBig().Cmp(want) != 0) {
		return "natural.CheckedSubMul"
	}
	i := integer.FromNatural(natural.FromLimbs(c.Xs)).SubMul(integer.FromNatural(natural.FromLimbs(c.Ys)), integer.FromNatural(natural.FromLimbs(c.Zs)))
	if i.ToBig().Cmp(want) != 0 {
		return "integer.SubMul"
	}
	return ""
}

func checkEqMod(c workload.Case) string {
	x, m := toBig(c.Xs), toBig(c.Zs)
	// Alternate between a congruent pair and an unrelated one.
	var y *big.Int
	if c.Bits%2 == 0 {
		y = new(big.Int).Mul(m, toBig(c.Ys))
		y.Add(y, x)
	} else {
		y = toBig(c.Ys)
	}
	diff := new(big.Int).Sub(x, y)
	want := new(big.Int).Rem(diff, m).Sign() == 0
	ys := y.Bits()
	if limbs.EqMod(c.Xs, ys, c.Zs) != want {
		return "limbs.EqMod"
	}
	if natural.FromLimbs(c.Xs).EqMod(natural.FromLimbs(ys), natural.FromLimbs(c.Zs)) != want {
		return "natural.EqMod"
	}
	return ""
}

func checkNaturalMod(c workload.Case, th limbs.ModThresholds) string {
	want := limbs.ModLimbNaive(c.Xs, c.D)
	n := natural.FromLimbs(c.Xs)
	if n.ModLimbWith(c.D, th) != want {
		return "natural.ModLimbWith"
	}
	if n.DivisibleByLimb(c.D) != (want == 0) {
		return "natural.DivisibleByLimb"
	}
	if neg := n.NegModLimb(c.D); (want == 0 && neg != 0) || (want != 0 && neg != c.D-want) {
		return "natural.NegModLimb"
	}
	return ""
}

func checkFloatPrec(c workload.Case) string {
	x := toBig(c.Xs)
	p := 1 + c.Bits%uint64(x.BitLen())
	want, wantOrd, ok := roundFloatBig(x, p, c.Mode)
	if !ok {
		return ""
	}
	f, o := float.FromNaturalPrecRound(natural.FromLimbs(c.Xs), p, c.Mode)
	if !f.IsValid() || f.ToBig().Cmp(want) != 0 || o != wantOrd {
		return "float.SetPrecRound"
	}
	return ""
}

// RunChecks runs every check over every case, the checks concurrently.
func RunChecks(ctx context.Context, checks []Check, cases []workload.Case, opts ExecOptions) []CheckResult {
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	results := make([]CheckResult, len(checks))
	for i, ck := range checks {
		g.Go(func() error {
			results[i] = runCheck(ctx, ck, cases, opts)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runCheck(ctx context.Context, ck Check, cases []workload.Case, opts ExecOptions) (res CheckResult) {
	ctx, span := tracer.Start(ctx, "check."+ck.Name, trace.WithAttributes(
		attribute.String("check", ck.Name),
		attribute.Int("cases", len(cases)),
	))
	defer span.End()

	res = CheckResult{Name: ck.Name}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = apperrors.StrategyError{Strategy: ck.Name, Cause: fmt.Errorf("panic: %v", r)}
		}
		res.Duration = time.Since(start)
		finishCheck(span, opts, res)
	}()

	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		res.Cases++
		culprit := ck.Run(c)
		if culprit == "" {
			continue
		}
		res.Failures++
		if res.Failures == 1 {
			res.Err = apperrors.MismatchError{Operation: ck.Name, Case: i, Length: len(c.Xs), Strategies: []string{culprit}}
			opts.logger().Error().
				Str("check", ck.Name).
				Int("case", i).
				Str("implementation", culprit).
				Msg("cross-check failed")
		}
	}
	return res
}

func finishCheck(span trace.Span, opts ExecOptions, res CheckResult) {
	span.SetAttributes(attribute.Int("failures", res.Failures))
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	if opts.Recorder != nil {
		opts.Recorder.ObserveStrategy(res.Name, "math/big", res.Duration)
		opts.Recorder.AddCases(res.Name, res.Cases)
		if res.Failures > 0 {
			opts.Recorder.AddMismatches(res.Name, "math/big", res.Failures)
		}
	}
	opts.logger().Debug().
		Str("check", res.Name).
		Int("cases", res.Cases).
		Dur("duration", res.Duration).
		Msg("check finished")
}
