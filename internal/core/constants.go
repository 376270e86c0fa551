// Package core holds constants shared across pvx packages.
package core

import "time"

// File permissions.
const (
	// PermFile is the mode for project files users commit (pvx.yaml, requirements, lock).
	PermFile = 0o644
	// PermDir is the mode for directories pvx creates.
	PermDir = 0o755
)

// Timeouts for calls that must not hang the CLI.
const (
	// TimeoutShort bounds tool probes such as `uv --version`.
	TimeoutShort = 5 * time.Second
	// TimeoutNetwork bounds the single package index request.
	TimeoutNetwork = 10 * time.Second
)
