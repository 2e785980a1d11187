package config

import (
	"flag"
	"fmt"
	"strconv"

	apperrors "github.com/agbru/limbkit/internal/errors"
	"github.com/agbru/limbkit/internal/limbs"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--mod-1n-to-mod-1-1, ...)
//   2. Environment variables (LIMBKIT_MOD_1N_TO_MOD_1_1, ...)
//   3. Cached calibration profile (~/.limbkit_calibration.json)
//   4. limbs.DefaultModThresholds for the current limb width

// ThresholdOverrides holds user-supplied mod_limb thresholds. A nil field is
// left to the lower layers.
type ThresholdOverrides struct {
	Norm         *int
	Unnorm       *int
	Mod1NToMod11 *int
	Mod1UToMod11 *int
	Mod11ToMod12 *int
	Mod12ToMod14 *int
	// Mod11PMethod is "1", "2" or empty.
	Mod11PMethod string
}

// thresholdFlag binds one override to its flag and environment names.
type thresholdFlag struct {
	flag, env, usage string
	field            func(*ThresholdOverrides) **int
}

var thresholdFlags = []thresholdFlag{
	{"mod-1-norm", "MOD_1_NORM", "schoolbook preinversion threshold for normalized divisors",
		func(o *ThresholdOverrides) **int { return &o.Norm }},
	{"mod-1-unnorm", "MOD_1_UNNORM", "schoolbook preinversion threshold for unnormalized divisors",
		func(o *ThresholdOverrides) **int { return &o.Unnorm }},
	{"mod-1n-to-mod-1-1", "MOD_1N_TO_MOD_1_1", "normalized schoolbook to two-limb fold crossover",
		func(o *ThresholdOverrides) **int { return &o.Mod1NToMod11 }},
	{"mod-1u-to-mod-1-1", "MOD_1U_TO_MOD_1_1", "unnormalized schoolbook to two-limb fold crossover",
		func(o *ThresholdOverrides) **int { return &o.Mod1UToMod11 }},
	{"mod-1-1-to-mod-1-2", "MOD_1_1_TO_MOD_1_2", "fold to one-leading-zero strategy crossover",
		func(o *ThresholdOverrides) **int { return &o.Mod11ToMod12 }},
	{"mod-1-2-to-mod-1-4", "MOD_1_2_TO_MOD_1_4", "one- to two-leading-zero strategy crossover",
		func(o *ThresholdOverrides) **int { return &o.Mod12ToMod14 }},
}

func parseThreshold(s string) (*int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid threshold %q", s)
	}
	return &n, nil
}

func (o *ThresholdOverrides) register(fs *flag.FlagSet) {
	for _, tf := range thresholdFlags {
		dst := tf.field(o)
		fs.Func(tf.flag, tf.usage, func(s string) error {
			n, err := parseThreshold(s)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	fs.StringVar(&o.Mod11PMethod, "mod-1-1p-method", "", "two-limb fold variant: 1 or 2")
}

func (o ThresholdOverrides) validate() error {
	switch o.Mod11PMethod {
	case "", "1", "2":
		return nil
	}
	return apperrors.ValidationError{Field: "mod-1-1p-method", Message: "must be 1 or 2"}
}

// IsZero reports whether no override is set.
func (o ThresholdOverrides) IsZero() bool {
	return o == ThresholdOverrides{}
}

// ResolveModThresholds layers the overrides in cfg over the calibration
// profile thresholds (nil when no profile was loaded) and the width defaults.
func ResolveModThresholds(cfg AppConfig, profile *limbs.ModThresholds) limbs.ModThresholds {
	th := limbs.DefaultModThresholds()
	if profile != nil {
		th = *profile
	}
	o := cfg.Thresholds
	for _, f := range []struct {
		src *int
		dst *int
	}{
		{o.Norm, &th.Norm},
		{o.Unnorm, &th.Unnorm},
		{o.Mod1NToMod11, &th.Mod1NToMod11},
		{o.Mod1UToMod11, &th.Mod1UToMod11},
		{o.Mod11ToMod12, &th.Mod11ToMod12},
		{o.Mod12ToMod14, &th.Mod12ToMod14},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	switch o.Mod11PMethod {
	case "1":
		th.Mod11PMethod = true
	case "2":
		th.Mod11PMethod = false
	}
	return th
}
