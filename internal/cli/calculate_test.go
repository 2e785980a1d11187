package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/limbkit/internal/config"
	"github.com/agbru/limbkit/internal/limbs"
	"github.com/agbru/limbkit/internal/orchestration"
	"github.com/agbru/limbkit/internal/workload"
)

// TestPrintExecutionConfig tests the PrintExecutionConfig function.
func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		Command:      config.CommandVerify,
		Seed:         42,
		Lengths:      []int{1, 2, 64},
		DivisorClass: workload.Normalized,
		Rounds:       8,
		Timeout:      time.Minute,
	}

	PrintExecutionConfig(cfg, limbs.DefaultModThresholds(), &buf)

	output := buf.String()
	for _, want := range []string{"Execution Configuration", "verify", "42", "normalized", "logical processors", "Thresholds"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

// TestPrintExecutionMode tests the PrintExecutionMode function.
func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	reg := orchestration.DefaultRegistry(limbs.DefaultModThresholds())

	t.Run("Single strategy mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		s, err := reg.Get("alt2")
		if err != nil {
			t.Fatal(err)
		}
		PrintExecutionMode([]orchestration.Strategy{s}, &buf)
		if !strings.Contains(buf.String(), "single strategy") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("Multiple strategies mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		strategies, err := reg.Select(nil)
		if err != nil {
			t.Fatal(err)
		}
		PrintExecutionMode(strategies, &buf)
		if !strings.Contains(buf.String(), "parallel comparison") || !strings.Contains(buf.String(), "naive") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}
