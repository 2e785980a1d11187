package calibration

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/metrics"
	"github.com/agbru/limbkit/internal/workload"
)

var tracer = otel.Tracer("github.com/agbru/limbkit/internal/calibration")

// never is a threshold no dividend length reaches.
const never = math.MaxInt

// DefaultMinSampleTime is the minimum wall time of one timing sample.
const DefaultMinSampleTime = 2 * time.Millisecond

// Options configures a calibration or bench run.
type Options struct {
	// Lengths are the dividend lengths to time. Lengths below 2 are ignored
	// by the crossovers, since ModLimbWith never dispatches them.
	Lengths []int
	// Vectors is the number of random dividends per length.
	Vectors int
	Seed    uint64
	// Workers bounds the crossovers timed concurrently. Zero means one.
	Workers int
	// MinSampleTime defaults to DefaultMinSampleTime.
	MinSampleTime time.Duration
	// Progress, when non-nil, receives the fraction of work done. Calls are
	// serialized.
	Progress func(float64)
	Recorder *metrics.Recorder
	Logger   *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

func (o Options) withDefaults() Options {
	if o.Vectors <= 0 {
		o.Vectors = 16
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.MinSampleTime <= 0 {
		o.MinSampleTime = DefaultMinSampleTime
	}
	if len(o.Lengths) == 0 {
		o.Lengths = GenerateCalibrationLengths()
	}
	return o
}

// Measurement is the timing of both sides of one crossover at one length.
type Measurement struct {
	Threshold string
	Length    int
	// Below and From are the costs, in ns per limb, of the configuration
	// used below the threshold and from it on.
	Below, From float64
}

// Result is the outcome of RunModLimbCalibration.
type Result struct {
	Thresholds   limbs.ModThresholds
	Measurements []Measurement
	Duration     time.Duration
}

// crossover describes one threshold: ModLimbWith is timed under below and
// under from on divisors of the given class.
type crossover struct {
	name        string
	class       workload.DivisorClass
	below, from limbs.ModThresholds
	set         func(th *limbs.ModThresholds, n int)
}

func crossovers() []crossover {
	base := limbs.DefaultModThresholds()
	with := func(f func(*limbs.ModThresholds)) limbs.ModThresholds {
		th := base
		f(&th)
		return th
	}
	return []crossover{
		{
			name:  "mod_1_norm",
			class: workload.Normalized,
			below: with(func(th *limbs.ModThresholds) { th.Mod1NToMod11, th.Norm = never, never }),
			from:  with(func(th *limbs.ModThresholds) { th.Mod1NToMod11, th.Norm = never, 0 }),
			set:   func(th *limbs.ModThresholds, n int) { th.Norm = n },
		},
		{
			name:  "mod_1_unnorm",
			class: workload.Unnormalized,
			below: with(func(th *limbs.ModThresholds) { th.Mod1UToMod11, th.Unnorm = never, never }),
			from:  with(func(th *limbs.ModThresholds) { th.Mod1UToMod11, th.Unnorm = never, 0 }),
			set:   func(th *limbs.ModThresholds, n int) { th.Unnorm = n },
		},
		{
			name:  "mod_1n_to_mod_1_1",
			class: workload.Normalized,
			below: with(func(th *limbs.ModThresholds) { th.Mod1NToMod11 = never }),
			from:  with(func(th *limbs.ModThresholds) { th.Mod1NToMod11 = 0 }),
			set:   func(th *limbs.ModThresholds, n int) { th.Mod1NToMod11 = n },
		},
		{
			name:  "mod_1u_to_mod_1_1",
			class: workload.Unnormalized,
			below: with(func(th *limbs.ModThresholds) { th.Mod1UToMod11 = never }),
			from:  with(func(th *limbs.ModThresholds) { th.Mod1UToMod11, th.Mod11ToMod12 = 0, never }),
			set:   func(th *limbs.ModThresholds, n int) { th.Mod1UToMod11 = n },
		},
		{
			name:  "mod_1_1_to_mod_1_2",
			class: workload.Unnormalized,
			below: with(func(th *limbs.ModThresholds) { th.Mod1UToMod11, th.Mod11ToMod12 = 0, never }),
			from:  with(func(th *limbs.ModThresholds) { th.Mod1UToMod11, th.Mod11ToMod12, th.Mod12ToMod14 = 0, 0, never }),
			set:   func(th *limbs.ModThresholds, n int) { th.Mod11ToMod12 = n },
		},
		{
			name:  "mod_1_2_to_mod_1_4",
			class: workload.TwoZeros,
			below: with(func(th *limbs.ModThresholds) { th.Mod1UToMod11, th.Mod11ToMod12, th.Mod12ToMod14 = 0, 0, never }),
			from:  with(func(th *limbs.ModThresholds) { th.Mod1UToMod11, th.Mod11ToMod12, th.Mod12ToMod14 = 0, 0, 0 }),
			set:   func(th *limbs.ModThresholds, n int) { th.Mod12ToMod14 = n },
		},
		{
			// Not a length: from wins when method 1 is faster overall.
			name:  "mod_1_1p_method",
			class: workload.Normalized,
			below: with(func(th *limbs.ModThresholds) { th.Mod1NToMod11, th.Mod11PMethod = 0, false }),
			from:  with(func(th *limbs.ModThresholds) { th.Mod1NToMod11, th.Mod11PMethod = 0, true }),
		},
	}
}

// RunModLimbCalibration times every crossover over opts.Lengths and returns
// the derived thresholds. A crossover whose right-hand side never wins gets a
// threshold one past the longest length timed.
//
// Returns:
//   - Result: The thresholds and raw measurements.
//   - error: The context error if the run was canceled.
func RunModLimbCalibration(ctx context.Context, opts Options) (Result, error) {
	opts = opts.withDefaults()
	start := time.Now()
	xos := crossovers()
	lengths := calibrationLengths(opts.Lengths)
	if len(lengths) == 0 {
		return Result{}, fmt.Errorf("calibration needs a length of at least 2 limbs, got %v", opts.Lengths)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	measured := make([][]Measurement, len(xos))
	progress := newProgressCounter(len(xos)*len(lengths), opts.Progress)
	for i, xo := range xos {
		g.Go(func() error {
			ms, err := timeCrossover(ctx, xo, lengths, opts, progress)
			measured[i] = ms
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Thresholds: limbs.DefaultModThresholds()}
	for i, xo := range xos {
		res.Measurements = append(res.Measurements, measured[i]...)
		if xo.set == nil {
			res.Thresholds.Mod11PMethod = totalCost(measured[i], true) < totalCost(measured[i], false)
			continue
		}
		n := firstWin(measured[i], lengths)
		xo.set(&res.Thresholds, n)
		if opts.Recorder != nil {
			opts.Recorder.SetThreshold(xo.name, n)
		}
		opts.logger().Info().Str("threshold", xo.name).Int("limbs", n).Msg("crossover found")
	}
	res.Duration = time.Since(start)
	return res, nil
}

func calibrationLengths(lengths []int) []int {
	out := make([]int, 0, len(lengths))
	for _, n := range lengths {
		if n >= 2 {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// firstWin returns the first length from which the right-hand configuration
// is faster at every longer length timed.
func firstWin(ms []Measurement, lengths []int) int {
	win := lengths[len(lengths)-1] + 1
	for i := len(ms) - 1; i >= 0; i-- {
		if ms[i].From >= ms[i].Below {
			break
		}
		win = ms[i].Length
	}
	return win
}

func totalCost(ms []Measurement, from bool) float64 {
	var sum float64
	for _, m := range ms {
		if from {
			sum += m.From
		} else {
			sum += m.Below
		}
	}
	return sum
}

func timeCrossover(ctx context.Context, xo crossover, lengths []int, opts Options, progress *progressCounter) ([]Measurement, error) {
	ctx, span := tracer.Start(ctx, "calibrate."+xo.name, trace.WithAttributes(
		attribute.String("threshold", xo.name),
		attribute.String("divisor_class", string(xo.class)),
	))
	defer span.End()

	r := workload.NewRand(opts.Seed)
	ms := make([]Measurement, 0, len(lengths))
	for _, n := range lengths {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		xss, ds := vectors(r, n, opts.Vectors, xo.class)
		m := Measurement{
			Threshold: xo.name,
			Length:    n,
			Below:     nsPerLimb(xss, ds, xo.below, opts.MinSampleTime),
			From:      nsPerLimb(xss, ds, xo.from, opts.MinSampleTime),
		}
		ms = append(ms, m)
		if opts.Recorder != nil {
			length := strconv.Itoa(n)
			opts.Recorder.SetNsPerLimb(xo.name+"/below", length, m.Below)
			opts.Recorder.SetNsPerLimb(xo.name+"/from", length, m.From)
		}
		opts.logger().Debug().
			Str("threshold", xo.name).
			Int("limbs", n).
			Float64("below_ns_per_limb", m.Below).
			Float64("from_ns_per_limb", m.From).
			Msg("measured")
		progress.step()
	}
	return ms, nil
}

func vectors(r *rand.Rand, n, count int, class workload.DivisorClass) ([][]limbs.Limb, []limbs.Limb) {
	xss := make([][]limbs.Limb, count)
	ds := make([]limbs.Limb, count)
	for i := range xss {
		xss[i] = workload.Limbs(r, n)
		ds[i] = workload.Divisor(r, class)
	}
	return xss, ds
}

// BenchResult is the cost of the dispatching ModLimbWith at one length.
type BenchResult struct {
	Class     workload.DivisorClass
	Length    int
	NsPerLimb float64
}

// BenchModLimb times ModLimbWith under th for every length and divisor class.
func BenchModLimb(ctx context.Context, th limbs.ModThresholds, classes []workload.DivisorClass, opts Options) ([]BenchResult, error) {
	opts = opts.withDefaults()
	ctx, span := tracer.Start(ctx, "bench.mod_limb")
	defer span.End()

	r := workload.NewRand(opts.Seed)
	progress := newProgressCounter(len(classes)*len(opts.Lengths), opts.Progress)
	results := make([]BenchResult, 0, len(classes)*len(opts.Lengths))
	for _, class := range classes {
		for _, n := range opts.Lengths {
			if err := ctx.Err(); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			xss, ds := vectors(r, n, opts.Vectors, class)
			ns := nsPerLimb(xss, ds, th, opts.MinSampleTime)
			results = append(results, BenchResult{Class: class, Length: n, NsPerLimb: ns})
			if opts.Recorder != nil {
				opts.Recorder.SetNsPerLimb("dispatch/"+string(class), strconv.Itoa(n), ns)
			}
			progress.step()
		}
	}
	return results, nil
}

// sink keeps the timed reductions observable.
var sink atomic.Uint64

// nsPerLimb runs ModLimbWith over every vector, doubling the repetitions until
// a sample lasts at least minTime.
func nsPerLimb(xss [][]limbs.Limb, ds []limbs.Limb, th limbs.ModThresholds, minTime time.Duration) float64 {
	total := 0
	for _, xs := range xss {
		total += max(len(xs), 1)
	}
	for reps := 1; ; reps *= 2 {
		var acc limbs.Limb
		start := time.Now()
		for range reps {
			for i, xs := range xss {
				acc ^= limbs.ModLimbWith(xs, ds[i], th)
			}
		}
		elapsed := time.Since(start)
		sink.Add(uint64(acc))
		if elapsed >= minTime || reps >= 1<<20 {
			return float64(elapsed.Nanoseconds()) / float64(reps*total)
		}
	}
}

type progressCounter struct {
	mu          sync.Mutex
	done, total int
	report      func(float64)
}

func newProgressCounter(total int, report func(float64)) *progressCounter {
	return &progressCounter{total: total, report: report}
}

func (p *progressCounter) step() {
	if p.report == nil || p.total == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.report(float64(p.done) / float64(p.total))
}
