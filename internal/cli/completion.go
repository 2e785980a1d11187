package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/limbkit/internal/config"
	"github.com/agbru/limbkit/internal/workload"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long       string   // long flag name without "--"
	Short      string   // short flag without "-"
	Help       string   // description text
	Values     []string // suggested values (nil = boolean or free-form)
	ValueName  string   // label for the value, empty for booleans
	IsFile     bool     // the flag takes a file path
	IsStrategy bool     // values come from the strategy registry
}

var commands = []string{config.CommandVerify, config.CommandCalibrate, config.CommandBench}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "seed", Help: "Workload seed", ValueName: "seed"},
	{Long: "lengths", Help: "Comma-separated dividend lengths in limbs", Values: []string{config.DefaultLengths, "2,3,4,8,16"}, ValueName: "lengths"},
	{Long: "divisor", Help: "Divisor class", Values: divisorClasses(), ValueName: "class"},
	{Long: "rounds", Help: "Cases per length", Values: []string{"1", "8", "64"}, ValueName: "count"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1m", "5m", "10m", "30m"}, ValueName: "duration"},
	{Long: "strategies", Help: "mod_limb strategies to compare", IsStrategy: true, ValueName: "strategies"},
	{Long: "workers", Help: "Maximum concurrent strategy runs", ValueName: "count"},
	{Long: "profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "use-profile", Help: "Load thresholds from the calibration profile"},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file"},
	{Long: "verbose", Short: "v", Help: "Verbose output"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "quick", Help: "Calibrate over fewer lengths"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "log-json", Help: "Write diagnostics as JSON lines"},
	{Long: "mod-1-1p-method", Help: "mod_1_1 method", Values: []string{"1", "2"}, ValueName: "method"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

func divisorClasses() []string {
	out := make([]string, len(workload.Classes))
	for i, c := range workload.Classes {
		out[i] = string(c)
	}
	return out
}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: "bash", "zsh", "fish" or "powershell".
//   - strategies: The registered strategy names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, strategies []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(strategies)
	case "zsh":
		script = zshCompletion(strategies)
	case "fish":
		script = fishCompletion(strategies)
	case "powershell", "ps":
		script = powerShellCompletion(strategies)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(strategies []string) string {
	var opts, cases []string
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		pattern := strings.Join(flagNames(f), "|")
		switch {
		case f.IsFile:
			cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;", pattern))
		case f.IsStrategy:
			cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -W \"${strategies}\" -- \"${cur}\") )\n            return 0\n            ;;", pattern))
		case len(f.Values) > 0:
			cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;", pattern, strings.Join(f.Values, " ")))
		}
	}
	return fmt.Sprintf(`# Bash completion script for limbcheck
# Source this file or add it to /etc/bash_completion.d/

_limbcheck() {
    local cur prev opts strategies commands
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    strategies="%s all"
    commands="%s"

    case "${prev}" in
%s
    esac

    if [[ ${COMP_CWORD} -eq 1 && ${cur} != -* ]]; then
        COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
}

complete -F _limbcheck limbcheck
`, strings.Join(opts, " "), strings.Join(strategies, " "), strings.Join(commands, " "), strings.Join(cases, "\n"))
}

func zshCompletion(strategies []string) string {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef limbcheck

# Zsh completion script for limbcheck
# Place this file in $fpath as _limbcheck

_limbcheck() {
    local -a strategies
    strategies=(%s all)

    _arguments -s \
        '1:command:(%s)' \
%s
}

_limbcheck "$@"
`, strings.Join(strategies, " "), strings.Join(commands, " "), strings.Join(args, " \\\n"))
}

func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsStrategy:
		valueSuffix = fmt.Sprintf(":%s:($strategies)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func fishCompletion(strategies []string) string {
	lines := []string{
		"# Fish completion script for limbcheck",
		"# Add this to ~/.config/fish/completions/limbcheck.fish",
		"",
		"complete -c limbcheck -f",
		fmt.Sprintf("complete -c limbcheck -n '__fish_use_subcommand' -xa '%s'", strings.Join(commands, " ")),
		"",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c limbcheck"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsStrategy:
			parts = append(parts, fmt.Sprintf("-xa '%s all'", strings.Join(strategies, " ")))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(strategies []string) string {
	var options, switches []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		values := f.Values
		if f.IsStrategy {
			values = append(append([]string(nil), strategies...), "all")
		}
		if len(values) > 0 {
			switches = append(switches, fmt.Sprintf("        '--%s' { @('%s') | Where-Object { $_ -like \"$wordToComplete*\" }; return }", f.Long, strings.Join(values, "', '")))
		}
	}
	return fmt.Sprintf(`# PowerShell completion script for limbcheck
# Add this to your $PROFILE

Register-ArgumentCompleter -Native -CommandName limbcheck -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $prev = $commandAst.CommandElements[-2].ToString()
    switch ($prev) {
%s
    }

    $commands = @('%s')
    $commands + ($options | ForEach-Object { $_.Name }) |
        Where-Object { $_ -like "$wordToComplete*" } |
        ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }
}
`, strings.Join(options, ",\n"), strings.Join(switches, "\n"), strings.Join(commands, "', '"))
}
