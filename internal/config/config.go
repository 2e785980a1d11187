// Package config parses the limbcheck command line and environment into an
// AppConfig and resolves the mod_limb thresholds from their layered sources.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/workload"
)

// EnvPrefix prefixes every environment variable read by the tool.
const EnvPrefix = "LIMBKIT_"

// Commands accepted as the first positional argument.
const (
	CommandVerify    = "verify"
	CommandCalibrate = "calibrate"
	CommandBench     = "bench"
)

// Defaults.
const (
	DefaultSeed    = 1
	DefaultRounds  = 8
	DefaultTimeout = 5 * time.Minute
	DefaultLengths = "1,2,3,4,5,8,16,27,64,100,512,2048"
	DefaultTheme   = "dark"
)

// AppConfig is the parsed configuration of one limbcheck run.
type AppConfig struct {
	// Command is one of verify, calibrate or bench.
	Command string
	// Seed drives the workload generator.
	Seed uint64
	// Lengths are the dividend lengths, in limbs.
	Lengths []int
	// CustomLengths is set when Lengths did not come from DefaultLengths.
	CustomLengths bool
	// DivisorClass selects the generated divisors.
	DivisorClass workload.DivisorClass
	// Rounds is the number of cases per length.
	Rounds int
	Timeout time.Duration
	// Strategies restricts the mod_limb strategies run by verify. Empty
	// selects every registered strategy.
	Strategies []string
	// Workers bounds concurrent strategy runs. Zero means unbounded.
	Workers int
	// Profile is the calibration profile path. Empty selects the default.
	Profile string
	// UseProfile loads thresholds from Profile for verify and bench.
	UseProfile bool
	// MetricsFile receives the Prometheus registry in text format.
	MetricsFile string
	// Output receives a plain-text report of the run.
	Output string
	// Completion, when set, prints a completion script for that shell and
	// exits.
	Completion string
	Verbose     bool
	Quiet       bool
	NoColor     bool
	// Quick makes calibrate time fewer lengths when none are given.
	Quick bool
	// Theme names the color theme: dark, light or none.
	Theme string
	// LogJSON switches diagnostics on stderr to JSON lines.
	LogJSON bool
	// Thresholds holds explicit threshold overrides.
	Thresholds ThresholdOverrides
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Flags win over LIMBKIT_* variables, which win over defaults.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments after the program name.
//   - errWriter: Destination of usage and parse errors.
//   - availableStrategies: The names accepted by --strategies.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for --help, otherwise a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	cfg := AppConfig{Command: CommandVerify}
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cfg.Command = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [verify|calibrate|bench] [flags]\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	var lengths, class, strategies string
	fs.Uint64Var(&cfg.Seed, "seed", DefaultSeed, "workload seed")
	fs.StringVar(&lengths, "lengths", DefaultLengths, "comma-separated dividend lengths in limbs")
	fs.StringVar(&class, "divisor", string(workload.Any), "divisor class: normalized, unnormalized, two-zero or any")
	fs.IntVar(&cfg.Rounds, "rounds", DefaultRounds, "cases per length")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum run time")
	fs.StringVar(&strategies, "strategies", "all", "comma-separated mod_limb strategies, or all")
	fs.IntVar(&cfg.Workers, "workers", 0, "maximum concurrent strategy runs (0 = unbounded)")
	fs.StringVar(&cfg.Profile, "profile", "", "calibration profile path")
	fs.BoolVar(&cfg.UseProfile, "use-profile", false, "load thresholds from the calibration profile")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	fs.StringVar(&cfg.Output, "o", "", "report file (shorthand)")
	fs.StringVar(&cfg.Output, "output", "", "write a plain-text report to this file")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script for bash, zsh, fish or powershell")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose output")
	fs.BoolVar(&cfg.Quiet, "q", false, "quiet output (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "quiet output")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.Quick, "quick", false, "calibrate over a reduced set of lengths")
	fs.StringVar(&cfg.Theme, "theme", DefaultTheme, "color theme: dark, light or none")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "write diagnostics as JSON lines")
	cfg.Thresholds.register(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	raw := rawValues{lengths: lengths, class: class, strategies: strategies}
	applyEnvOverrides(&cfg, &raw, fs)

	var err error
	if cfg.Lengths, err = ParseLengths(raw.lengths); err != nil {
		return cfg, err
	}
	cfg.CustomLengths = raw.lengths != DefaultLengths
	if cfg.DivisorClass, err = workload.ParseDivisorClass(raw.class); err != nil {
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if raw.strategies != "all" {
		cfg.Strategies = splitList(raw.strategies)
	}
	if err := cfg.Validate(availableStrategies); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// rawValues holds the flags that are parsed after environment overrides.
type rawValues struct {
	lengths, class, strategies string
}

// Validate checks the semantic constraints flag parsing cannot express.
func (c AppConfig) Validate(availableStrategies []string) error {
	switch c.Command {
	case CommandVerify, CommandCalibrate, CommandBench:
	default:
		return apperrors.NewConfigError("unknown command %q (want verify, calibrate or bench)", c.Command)
	}
	if len(c.Lengths) == 0 {
		return apperrors.ValidationError{Field: "lengths", Message: "at least one length is required"}
	}
	if c.Rounds <= 0 {
		return apperrors.ValidationError{Field: "rounds", Message: "must be positive"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	switch c.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q (want dark, light or none)", c.Theme)}
	}
	if c.Verbose && c.Quiet {
		return apperrors.NewConfigError("--verbose and --quiet are mutually exclusive")
	}
	for _, s := range c.Strategies {
		if !slices.Contains(availableStrategies, s) {
			return apperrors.ValidationError{
				Field:   "strategies",
				Message: fmt.Sprintf("unknown strategy %q (available: %s)", s, strings.Join(availableStrategies, ", ")),
			}
		}
	}
	return c.Thresholds.validate()
}

// ParseLengths parses a comma-separated list of positive limb counts.
func ParseLengths(s string) ([]int, error) {
	var out []int
	for _, f := range splitList(s) {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, apperrors.ValidationError{Field: "lengths", Message: fmt.Sprintf("invalid length %q", f)}
		}
		out = append(out, n)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
