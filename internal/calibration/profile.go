package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/agbru/limbkit/internal/limbs"
)

const (
	// CurrentProfileVersion is bumped whenever the profile layout changes.
	CurrentProfileVersion = 1
	// DefaultProfileFileName is created in the user's home directory.
	DefaultProfileFileName = ".limbkit_calibration.json"
)

// CalibrationProfile is the persisted result of a calibration run.
type CalibrationProfile struct {
	NumCPU      int      `json:"num_cpu"`
	GOARCH      string   `json:"goarch"`
	GOOS        string   `json:"goos"`
	GoVersion   string   `json:"go_version"`
	WordSize    int      `json:"word_size"`
	CPUFeatures []string `json:"cpu_features,omitempty"`

	ModThresholds      limbs.ModThresholds `json:"mod_thresholds"`
	CalibrationLengths []int               `json:"calibration_lengths,omitempty"`

	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time"`
	ProfileVersion  int       `json:"profile_version"`
}

// NewProfile returns a profile describing the current machine, holding the
// default thresholds.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       limbs.Width,
		CPUFeatures:    CPUFeatures(),
		ModThresholds:  limbs.DefaultModThresholds(),
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// CPUFeatures lists the arithmetic-relevant CPU features detected at startup.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	add(cpu.X86.HasADX, "adx")
	add(cpu.X86.HasBMI2, "bmi2")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasPOPCNT, "popcnt")
	add(cpu.ARM64.HasASIMD, "asimd")
	add(cpu.ARM64.HasATOMICS, "atomics")
	return features
}

// IsValid reports whether p was produced on hardware matching the current
// machine by a compatible version of the tool.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == limbs.Width &&
		slices.Equal(p.CPUFeatures, CPUFeatures())
}

// IsStale reports whether p is older than maxAge. A nil profile is stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	return p == nil || time.Since(p.CalibratedAt) > maxAge
}

// String returns a human-readable summary.
func (p *CalibrationProfile) String() string {
	th := p.ModThresholds
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile (%s/%s, %d CPUs, %d-bit limbs, %s)\n", p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, p.GoVersion)
	if len(p.CPUFeatures) > 0 {
		fmt.Fprintf(&b, "  CPU features:       %s\n", strings.Join(p.CPUFeatures, ", "))
	}
	fmt.Fprintf(&b, "  mod_1 norm/unnorm:  %d / %d\n", th.Norm, th.Unnorm)
	fmt.Fprintf(&b, "  mod_1n -> mod_1_1:  %d\n", th.Mod1NToMod11)
	fmt.Fprintf(&b, "  mod_1u -> mod_1_1:  %d\n", th.Mod1UToMod11)
	fmt.Fprintf(&b, "  mod_1_1 -> mod_1_2: %d\n", th.Mod11ToMod12)
	fmt.Fprintf(&b, "  mod_1_2 -> mod_1_4: %d\n", th.Mod12ToMod14)
	fmt.Fprintf(&b, "  mod_1_1p method:    %d\n", methodNumber(th.Mod11PMethod))
	fmt.Fprintf(&b, "  Calibrated at %s", p.CalibratedAt.Format(time.RFC3339))
	if p.CalibrationTime != "" {
		fmt.Fprintf(&b, " in %s", p.CalibrationTime)
	}
	return b.String()
}

func methodNumber(method1 bool) int {
	if method1 {
		return 1
	}
	return 2
}

// SaveProfile writes p as indented JSON, creating parent directories.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When the file is missing,
// unreadable or was made on other hardware, it returns a fresh profile and
// false.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/DefaultProfileFileName, or the file name
// alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// MaxProfileAge is how long a cached profile is trusted.
const MaxProfileAge = 30 * 24 * time.Hour

// LoadCachedThresholds returns the thresholds of the profile at path (the
// default path when empty) if it is valid and not stale.
func LoadCachedThresholds(path string) (*limbs.ModThresholds, bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(MaxProfileAge) {
		return nil, false
	}
	th := p.ModThresholds
	return &th, true
}
