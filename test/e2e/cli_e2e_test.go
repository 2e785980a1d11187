package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds limbcheck and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "limbcheck"
	if runtime.GOOS == "windows" {
		binName = "limbcheck.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/limbcheck")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build limbcheck: %v", err)
	}

	small := []string{"--lengths", "1,2,5,9", "--rounds", "8"}
	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Verify",
			args:     small,
			wantOut:  "All strategies agree",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     append([]string{"--quiet"}, small...),
			wantOut:  "OK verify 32 cases",
			wantCode: 0,
		},
		{
			name:     "Single Strategy",
			args:     append([]string{"--strategies", "alt3"}, small...),
			wantOut:  "parallel comparison of 2 strategies",
			wantCode: 0,
		},
		{
			name:     "Forced Thresholds",
			args:     append([]string{"--mod-1-1-to-mod-1-2", "3", "--mod-1-2-to-mod-1-4", "4"}, small...),
			wantOut:  "All strategies agree",
			wantCode: 0,
		},
		{
			name:     "Bench",
			args:     []string{"bench", "--lengths", "4", "--rounds", "2", "--divisor", "normalized"},
			wantOut:  "ns/limb",
			wantCode: 0,
		},
		{
			name:     "Unknown Strategy",
			args:     []string{"--strategies", "fastest"},
			wantOut:  "fastest",
			wantCode: 4,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--fft"},
			wantOut:  "flag provided but not defined",
			wantCode: 4,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"--timeout", "1ns"},
			wantOut:  "timed out",
			wantCode: 2,
		},
		{
			name:     "Completion",
			args:     []string{"--completion", "bash"},
			wantOut:  "complete",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "limbcheck",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running limbcheck: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
