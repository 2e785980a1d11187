package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/limbkit/internal/calibration"
	"github.com/agbru/limbkit/internal/cli"
	"github.com/agbru/limbkit/internal/config"
	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/logging"
	"github.com/agbru/limbkit/internal/metrics"
	"github.com/agbru/limbkit/internal/orchestration"
	"github.com/agbru/limbkit/internal/sysmon"
	"github.com/agbru/limbkit/internal/workload"
)

// loadSampleInterval is how long system CPU usage is sampled before timing.
const loadSampleInterval = 100 * time.Millisecond

// progress returns the reporter and destination for progress display.
func (a *Application) progress(out io.Writer) (orchestration.ProgressReporter, io.Writer) {
	if a.Config.Quiet {
		return orchestration.NullProgressReporter{}, io.Discard
	}
	return cli.CLIProgressReporter{}, out
}

// detailOut is where tables and configuration go; quiet mode drops them.
func (a *Application) detailOut(out io.Writer) io.Writer {
	if a.Config.Quiet {
		return io.Discard
	}
	return out
}

// errOut is where failures are explained.
func (a *Application) errOut(out io.Writer) io.Writer {
	if a.Config.Quiet {
		return a.ErrWriter
	}
	return out
}

// checkLoad prints the system load and warns when timings may be noisy.
func (a *Application) checkLoad(ctx context.Context, out io.Writer) {
	s := sysmon.Sample(ctx, loadSampleInterval)
	fmt.Fprintf(out, "System load: %s.\n", s)
	if s.Busy() {
		a.Logger.Warn("system is busy, timings may be noisy", logging.Float64("cpu_percent", s.CPUPercent))
	}
}

// finish prints the summary, writes the report and maps err to an exit code.
func (a *Application) finish(out io.Writer, r cli.Report, summary string) int {
	if !a.Config.Quiet {
		cli.PresentSummary(out, r.Err == nil, summary)
	}
	outCfg := cli.OutputConfig{OutputFile: a.Config.Output, Quiet: a.Config.Quiet}
	if err := cli.DisplayResultWithConfig(out, r, outCfg); err != nil {
		a.Logger.Error("writing report", err, logging.String("path", a.Config.Output))
		if r.Err == nil {
			return apperrors.ExitErrorGeneric
		}
	}
	if apperrors.IsContextError(r.Err) {
		a.Logger.Warn("run interrupted", logging.String("command", r.Command))
	}
	if r.Err != nil {
		return cli.CLIResultPresenter{}.HandleError(r.Err, r.Duration, a.errOut(out))
	}
	return apperrors.ExitSuccess
}

// runVerify runs every selected strategy and every cross-check over the
// seeded workload and compares them with the reference strategy.
func (a *Application) runVerify(ctx context.Context, recorder *metrics.Recorder, out io.Writer) int {
	start := time.Now()
	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()

	strategies, err := a.Registry.Select(a.Config.Strategies)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	cases := workload.Generate(workload.Options{
		Seed:    a.Config.Seed,
		Lengths: a.Config.Lengths,
		Class:   a.Config.DivisorClass,
		Rounds:  a.Config.Rounds,
	})
	recorder.AddCases("mod_limb", len(cases))
	calibration.RecordThresholds(recorder, a.Thresholds)

	detail := a.detailOut(out)
	cli.PrintExecutionConfig(a.Config, a.Thresholds, detail)
	cli.PrintExecutionMode(strategies, detail)
	a.log.Debug().
		Int("strategies", len(strategies)).
		Int("cases", len(cases)).
		Bool("profile", a.ProfileLoaded).
		Msg("verify started")

	opts := orchestration.ExecOptions{Workers: a.Config.Workers, Recorder: recorder, Logger: &a.log}
	reporter, progressOut := a.progress(out)
	results := orchestration.ExecuteStrategies(ctx, strategies, cases, opts, reporter, progressOut)
	checks := orchestration.RunChecks(ctx, orchestration.DefaultChecks(a.Thresholds), cases, opts)

	presenter := cli.CLIResultPresenter{}
	err = orchestration.AnalyzeComparisonResults(results, cases, presenter, detail)
	for name, n := range orchestration.CompareResults(results, cases).Mismatches {
		recorder.AddMismatches("mod_limb", name, n)
	}
	if checkErr := orchestration.AnalyzeChecks(checks, presenter, detail); err == nil {
		err = checkErr
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(mem.Snapshot().Sub(before), out)
	}

	report := cli.Report{
		Command:    a.Config.Command,
		Seed:       a.Config.Seed,
		Lengths:    a.Config.Lengths,
		Cases:      len(cases),
		Thresholds: a.Thresholds,
		Strategies: results,
		Checks:     checks,
		Duration:   time.Since(start),
		Err:        err,
	}
	summary := fmt.Sprintf("%d strategies and %d checks over %d cases (seed %d)",
		len(results), len(checks), len(cases), a.Config.Seed)
	return a.finish(out, report, summary)
}

// runCalibrate measures every dispatch crossover and saves the profile.
func (a *Application) runCalibrate(ctx context.Context, recorder *metrics.Recorder, out io.Writer) int {
	var lengths []int
	switch {
	case a.Config.CustomLengths:
		lengths = a.Config.Lengths
	case a.Config.Quick:
		lengths = calibration.GenerateQuickCalibrationLengths()
	default:
		lengths = calibration.GenerateCalibrationLengths()
	}
	workers := a.Config.Workers
	if workers <= 0 {
		workers = calibration.CalibrationWorkers()
	}

	detail := a.detailOut(out)
	fmt.Fprintf(detail, "--- Calibrating mod_limb thresholds over lengths %v ---\n", lengths)
	a.checkLoad(ctx, detail)

	reporter, progressOut := a.progress(out)
	report, stop := cli.ProgressFunc(reporter, progressOut)
	res, err := calibration.RunModLimbCalibration(ctx, calibration.Options{
		Lengths:  lengths,
		Vectors:  a.Config.Rounds,
		Seed:     a.Config.Seed,
		Workers:  workers,
		Progress: report,
		Recorder: recorder,
		Logger:   &a.log,
	})
	stop()

	r := cli.Report{
		Command:  config.CommandCalibrate,
		Seed:     a.Config.Seed,
		Lengths:  lengths,
		Duration: res.Duration,
		Err:      err,
	}
	if err != nil {
		return a.finish(out, r, "calibration failed")
	}
	r.Thresholds = res.Thresholds

	calibration.PrintCalibrationResults(detail, res)
	calibration.PrintThresholds(detail, res.Thresholds)

	path := a.Config.Profile
	if path == "" {
		path = calibration.GetDefaultProfilePath()
	}
	if previous, ok := calibration.LoadOrCreateProfile(path); ok && previous.ModThresholds != res.Thresholds {
		fmt.Fprintf(detail, "\nThresholds differ from the profile calibrated %s:\n",
			previous.CalibratedAt.Format(time.RFC3339))
		calibration.PrintThresholds(detail, previous.ModThresholds)
	}

	profile := calibration.NewProfile()
	profile.ModThresholds = res.Thresholds
	profile.CalibrationLengths = lengths
	profile.CalibrationTime = res.Duration.Round(time.Millisecond).String()
	if err := profile.SaveProfile(path); err != nil {
		r.Err = apperrors.WrapError(err, "saving calibration profile")
		return a.finish(out, r, "calibration profile not saved")
	}
	a.Logger.Info("calibration profile saved", logging.String("path", path))
	fmt.Fprintf(detail, "\n%s\n", profile)
	return a.finish(out, r, "profile saved to "+path)
}

// runBench times the dispatching reduction under the resolved thresholds.
func (a *Application) runBench(ctx context.Context, recorder *metrics.Recorder, out io.Writer) int {
	start := time.Now()
	classes := []workload.DivisorClass{a.Config.DivisorClass}
	if a.Config.DivisorClass == workload.Any {
		classes = []workload.DivisorClass{workload.Normalized, workload.Unnormalized, workload.TwoZeros}
	}

	calibration.RecordThresholds(recorder, a.Thresholds)

	detail := a.detailOut(out)
	cli.PrintExecutionConfig(a.Config, a.Thresholds, detail)
	a.checkLoad(ctx, detail)

	reporter, progressOut := a.progress(out)
	report, stop := cli.ProgressFunc(reporter, progressOut)
	results, err := calibration.BenchModLimb(ctx, a.Thresholds, classes, calibration.Options{
		Lengths:  a.Config.Lengths,
		Vectors:  a.Config.Rounds,
		Seed:     a.Config.Seed,
		Progress: report,
		Recorder: recorder,
		Logger:   &a.log,
	})
	stop()

	if err == nil {
		calibration.PrintBenchResults(detail, results)
	}
	r := cli.Report{
		Command:    config.CommandBench,
		Seed:       a.Config.Seed,
		Lengths:    a.Config.Lengths,
		Cases:      len(results),
		Thresholds: a.Thresholds,
		Bench:      results,
		Duration:   time.Since(start),
		Err:        err,
	}
	return a.finish(out, r, fmt.Sprintf("%d classes over %d lengths", len(classes), len(a.Config.Lengths)))
}
