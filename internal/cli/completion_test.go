package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	strategies := []string{"alt1", "alt2", "naive"}
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"complete -F _limbcheck limbcheck", "--lengths", "alt1 alt2 naive all", "verify calibrate bench", "compgen -f"}},
		{"zsh", []string{"#compdef limbcheck", "'1:command:(verify calibrate bench)'", "--divisor[Divisor class]:class:(normalized unnormalized two-zero any)", "($strategies)"}},
		{"fish", []string{"complete -c limbcheck -l profile", "-rF", "-xa 'alt1 alt2 naive all'"}},
		{"powershell", []string{"Register-ArgumentCompleter", "'--strategies' { @('alt1', 'alt2', 'naive', 'all')"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, strategies); err != nil {
				t.Fatalf("GenerateCompletion: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "tcsh", nil); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistryIsConsistent(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		if f.Long == "" {
			t.Errorf("flag %+v has no long name", f)
		}
		if seen[f.Long] {
			t.Errorf("duplicate flag %q", f.Long)
		}
		seen[f.Long] = true
		if (f.IsFile || f.IsStrategy || len(f.Values) > 0) && f.ValueName == "" {
			t.Errorf("flag %q takes a value but has no ValueName", f.Long)
		}
	}
}
