package toolchain

import (
	"fmt"
	"regexp"
	"strings"
)

// MissingToolError reports a required program that is not on PATH.
type MissingToolError struct {
	Tool string
	Hint string
}

func (e *MissingToolError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s not found in PATH", e.Tool)
	}
	return fmt.Sprintf("%s not found in PATH; %s", e.Tool, e.Hint)
}

// InterpreterError reports that no interpreter satisfies the configured
// constraint, through uv or the pyenv fallback.
type InterpreterError struct {
	Constraint string
	Err        error
}

func (e *InterpreterError) Error() string {
	want := e.Constraint
	if want == "" {
		want = "any version"
	}
	msg := fmt.Sprintf("no Python interpreter found for %s", want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + " (install one with `uv python install` or set `python:` in pvx.yaml)"
}

func (e *InterpreterError) Unwrap() error { return e.Err }

// CommandError is a delegated tool that exited unsuccessfully.
type CommandError struct {
	Name     string
	Args     []string
	Stderr   string
	ExitCode int
	Err      error

	// Interactive is set for processes whose output already reached the
	// terminal; callers should not print the error again.
	Interactive bool
}

func (e *CommandError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s failed", e.Name, strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		fmt.Fprintf(&sb, " (exit status %d)", e.ExitCode)
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		fmt.Fprintf(&sb, ": %s", msg)
	} else if e.Err != nil && e.ExitCode <= 0 {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if hint := e.Hint(); hint != "" {
		fmt.Fprintf(&sb, "\nhint: %s", hint)
	}
	return sb.String()
}

func (e *CommandError) Unwrap() error { return e.Err }

// Hint returns a remediation for known resolver failures, or "".
func (e *CommandError) Hint() string {
	for _, p := range stderrPatterns {
		if p.pattern.MatchString(e.Stderr) {
			return p.hint
		}
	}
	return ""
}

// stderrPattern maps resolver output to a remediation.
type stderrPattern struct {
	pattern *regexp.Regexp
	hint    string
}

// stderrPatterns are checked in order; specific patterns come first.
var stderrPatterns = []stderrPattern{
	{
		pattern: regexp.MustCompile(`(?i)no solution found|unsatisfiable|ResolutionImpossible`),
		hint:    "the requirements conflict; relax a version constraint in the requirements file",
	},
	{
		pattern: regexp.MustCompile(`(?i)not found in the package registry|No matching distribution|was not found in the package registry`),
		hint:    "check the package name and version spelling",
	},
	{
		pattern: regexp.MustCompile(`(?i)requires-python|Requires-Python|requires a different Python`),
		hint:    "a package does not support this interpreter; change `python:` in pvx.yaml",
	},
	{
		pattern: regexp.MustCompile(`(?i)Could not resolve host|dns error|Temporary failure in name resolution`),
		hint:    "check your network connection",
	},
	{
		pattern: regexp.MustCompile(`(?i)timed out|operation timed out`),
		hint:    "the package index did not answer in time; try again",
	},
	{
		pattern: regexp.MustCompile(`(?i)No module named venv|ensurepip is not available`),
		hint:    "install the venv module for this interpreter (e.g. python3-venv)",
	},
}
