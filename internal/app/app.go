package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/limbkit/internal/calibration"
	"github.com/agbru/limbkit/internal/cli"
	"github.com/agbru/limbkit/internal/config"
	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/logging"
	"github.com/agbru/limbkit/internal/metrics"
	"github.com/agbru/limbkit/internal/orchestration"
	"github.com/agbru/limbkit/internal/ui"
)

// Application represents one limbcheck invocation.
type Application struct {
	Config config.AppConfig
	// Registry holds the mod_limb strategies built for Thresholds.
	Registry *orchestration.Registry
	// Thresholds are the resolved mod_limb dispatch thresholds.
	Thresholds limbs.ModThresholds
	// ProfileLoaded is set when Thresholds came from a calibration profile.
	ProfileLoaded bool
	ErrWriter     io.Writer
	// Logger receives diagnostics on ErrWriter.
	Logger logging.Logger

	log zerolog.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry replaces the default strategy registry.
func WithRegistry(r *orchestration.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// New creates an Application by parsing args, which include the program
// name. Thresholds are resolved from flags, the environment and, with
// --use-profile, the cached calibration profile.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	names := orchestration.DefaultRegistry(limbs.DefaultModThresholds()).List()
	if app.Registry != nil {
		names = app.Registry.List()
	}

	programName := "limbcheck"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, names)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	adapter := logging.NewConsoleLogger(errWriter, "limbcheck", cfg.NoColor)
	if cfg.LogJSON {
		adapter = logging.NewLogger(errWriter, "limbcheck")
	}
	adapter = adapter.WithLevel(logLevel(cfg))
	app.Logger = adapter
	app.log = adapter.Zerolog()

	var profile *limbs.ModThresholds
	if cfg.UseProfile {
		if th, ok := calibration.LoadCachedThresholds(cfg.Profile); ok {
			profile = th
			app.ProfileLoaded = true
		} else {
			app.Logger.Warn("no valid calibration profile, using defaults", logging.String("profile", cfg.Profile))
		}
	}
	app.Thresholds = config.ResolveModThresholds(cfg, profile)
	if app.Registry == nil {
		app.Registry = orchestration.DefaultRegistry(app.Thresholds)
	}
	return app, nil
}

// Run executes the configured command and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	recorder := metrics.NewRecorder()
	var code int
	switch a.Config.Command {
	case config.CommandCalibrate:
		code = a.runCalibrate(ctx, recorder, out)
	case config.CommandBench:
		code = a.runBench(ctx, recorder, out)
	default:
		code = a.runVerify(ctx, recorder, out)
	}

	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Error("writing metrics", err, logging.String("path", a.Config.MetricsFile))
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	return code
}

func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Registry.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
