package tui

import (
	"os"

	"golang.org/x/term"
)

// NoInteractiveEnv disables prompts and spinners when set to a non-empty value.
const NoInteractiveEnv = "PVX_NO_INTERACTIVE"

// forceNonInteractive is set by the global --no-interactive flag.
var forceNonInteractive bool

// SetNonInteractive turns prompts and spinners off for the rest of the run.
func SetNonInteractive(disabled bool) {
	forceNonInteractive = disabled
}

// IsInteractive determines if the current environment supports interactive prompts.
// It returns false in the following cases:
//   - interactivity was disabled by flag or PVX_NO_INTERACTIVE
//   - stdout is not a terminal (redirected to file, pipe, etc.)
//   - running in a CI/CD environment (detected via environment variables)
func IsInteractive() bool {
	if forceNonInteractive || os.Getenv(NoInteractiveEnv) != "" {
		return false
	}

	if !IsTTY() {
		return false
	}

	// Check for common CI environment variables
	ciEnvs := []string{
		"CI",                     // Generic CI indicator
		"CONTINUOUS_INTEGRATION", // Generic CI indicator
		"GITHUB_ACTIONS",         // GitHub Actions
		"GITLAB_CI",              // GitLab CI
		"CIRCLECI",               // CircleCI
		"TRAVIS",                 // Travis CI
		"JENKINS_HOME",           // Jenkins
		"BUILDKITE",              // Buildkite
		"BITBUCKET_BUILD_NUMBER", // Bitbucket Pipelines
		"DRONE",                  // Drone CI
		"TF_BUILD",               // Azure Pipelines
	}

	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return false
		}
	}

	return true
}

// IsTTY checks if stdout is a terminal.
// This is a lower-level check than IsInteractive.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}
