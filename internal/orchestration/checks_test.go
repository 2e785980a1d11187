package orchestration

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/rounding"
	"github.com/agbru/limbkit/internal/workload"
)

func TestDefaultChecksPass(t *testing.T) {
	t.Parallel()
	cases := workload.Generate(workload.Options{Seed: 9, Lengths: []int{1, 2, 3, 6, 33}, Class: workload.Any, Rounds: 20})
	results := RunChecks(context.Background(), DefaultChecks(limbs.DefaultModThresholds()), cases, ExecOptions{Workers: 2})
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: %v", res.Name, res.Err)
		}
		if res.Cases != len(cases) {
			t.Errorf("%s: ran %d cases, want %d", res.Name, res.Cases, len(cases))
		}
	}
}

func TestRunChecksReportsCulprit(t *testing.T) {
	t.Parallel()
	cases := testCases()
	ck := Check{Name: "fake", Run: func(c workload.Case) string {
		if len(c.Xs) == 2 {
			return "fake.Impl"
		}
		return ""
	}}
	res := RunChecks(context.Background(), []Check{ck}, cases, ExecOptions{})[0]
	if res.Failures != 12 {
		t.Errorf("Failures = %d, want 12", res.Failures)
	}
	var me apperrors.MismatchError
	if !errors.As(res.Err, &me) || me.Case != 12 || me.Strategies[0] != "fake.Impl" {
		t.Errorf("Err = %v, want mismatch at case 12 naming fake.Impl", res.Err)
	}
}

func TestRunChecksRecoversPanic(t *testing.T) {
	t.Parallel()
	ck := Check{Name: "panics", Run: func(workload.Case) string { panic("no") }}
	res := RunChecks(context.Background(), []Check{ck}, testCases(), ExecOptions{})[0]
	var se apperrors.StrategyError
	if !errors.As(res.Err, &se) {
		t.Errorf("Err = %v, want StrategyError", res.Err)
	}
}

func TestCheckShrRoundEveryMode(t *testing.T) {
	t.Parallel()
	cases := workload.Generate(workload.Options{Seed: 4, Lengths: []int{1, 2, 5}, Class: workload.Any, Rounds: 10})
	for i, c := range cases {
		for _, m := range rounding.Modes {
			c.Mode = m
			if culprit := checkShrRound(c); culprit != "" {
				t.Fatalf("case %d, mode %s: %s disagrees with math/big", i, m, culprit)
			}
		}
	}
}

func TestShrRoundBig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x    int64
		bits uint64
		rm   rounding.Mode
		want int64
		ord  rounding.Ordering
		ok   bool
	}{
		{5, 1, rounding.Down, 2, rounding.Less, true},
		{5, 1, rounding.Up, 3, rounding.Greater, true},
		{5, 1, rounding.Nearest, 2, rounding.Less, true},
		{7, 1, rounding.Nearest, 4, rounding.Greater, true},
		{-5, 1, rounding.Down, -2, rounding.Greater, true},
		{-5, 1, rounding.Up, -3, rounding.Less, true},
		{-5, 1, rounding.Floor, -3, rounding.Less, true},
		{-5, 1, rounding.Ceiling, -2, rounding.Greater, true},
		{-5, 1, rounding.Nearest, -2, rounding.Greater, true},
		{-7, 1, rounding.Nearest, -4, rounding.Less, true},
		{8, 2, rounding.Exact, 2, rounding.Equal, true},
		{9, 2, rounding.Exact, 0, rounding.Equal, false},
	}
	for _, tt := range tests {
		got, ord, ok := shrRoundBig(big.NewInt(tt.x), tt.bits, tt.rm)
		if ok != tt.ok {
			t.Errorf("shrRoundBig(%d, %d, %v) ok = %v", tt.x, tt.bits, tt.rm, ok)
			continue
		}
		if ok && (got.Int64() != tt.want || ord != tt.ord) {
			t.Errorf("shrRoundBig(%d, %d, %v) = %v, %v; want %d, %v", tt.x, tt.bits, tt.rm, got, ord, tt.want, tt.ord)
		}
	}
}
