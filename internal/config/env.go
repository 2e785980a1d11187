// This file contains the LIMBKIT_* environment overrides.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the aliased flags was explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without EnvPrefix) to the flag name(s) it
// shadows and a function applying the env value. Unparsable values are
// ignored.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, *rawValues, string)
}

var envOverrides = []envOverride{
	{"SEED", []string{"seed"}, func(c *AppConfig, _ *rawValues, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},
	{"ROUNDS", []string{"rounds"}, func(c *AppConfig, _ *rawValues, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rounds = parsed
		}
	}},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, _ *rawValues, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, _ *rawValues, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"LENGTHS", []string{"lengths"}, func(_ *AppConfig, r *rawValues, v string) { r.lengths = v }},
	{"DIVISOR", []string{"divisor"}, func(_ *AppConfig, r *rawValues, v string) { r.class = v }},
	{"STRATEGIES", []string{"strategies"}, func(_ *AppConfig, r *rawValues, v string) { r.strategies = v }},
	{"PROFILE", []string{"profile"}, func(c *AppConfig, _ *rawValues, v string) { c.Profile = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, _ *rawValues, v string) { c.MetricsFile = v }},
	{"OUTPUT", []string{"o", "output"}, func(c *AppConfig, _ *rawValues, v string) { c.Output = v }},
	{"MOD_1_1P_METHOD", []string{"mod-1-1p-method"}, func(c *AppConfig, _ *rawValues, v string) {
		c.Thresholds.Mod11PMethod = v
	}},

	{"USE_PROFILE", []string{"use-profile"}, func(c *AppConfig, _ *rawValues, v string) {
		c.UseProfile = parseBoolEnv(v, c.UseProfile)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, _ *rawValues, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, _ *rawValues, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"QUICK", []string{"quick"}, func(c *AppConfig, _ *rawValues, v string) {
		c.Quick = parseBoolEnv(v, c.Quick)
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, _ *rawValues, v string) { c.Theme = v }},
	{"LOG_JSON", []string{"log-json"}, func(c *AppConfig, _ *rawValues, v string) {
		c.LogJSON = parseBoolEnv(v, c.LogJSON)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, _ *rawValues, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

func init() {
	for _, tf := range thresholdFlags {
		envOverrides = append(envOverrides, envOverride{tf.env, []string{tf.flag}, func(c *AppConfig, _ *rawValues, v string) {
			if n, err := parseThreshold(v); err == nil {
				*tf.field(&c.Thresholds) = n
			}
		}})
	}
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive) and returns defaultVal otherwise.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies LIMBKIT_* values for every flag that was not set
// on the command line.
func applyEnvOverrides(cfg *AppConfig, raw *rawValues, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(cfg, raw, val)
		}
	}
}
