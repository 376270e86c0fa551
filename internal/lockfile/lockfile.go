// Package lockfile decides whether a compiled lock artifact still matches the
// dependency declaration file it was produced from.
//
// The lock's first line records the SHA-256 of the requirements file bytes:
//
//	# requirements-hash: <64 hex chars>
//
// followed by the resolver's output verbatim. Timestamps are never consulted.
package lockfile

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/indaco/pvx/internal/core"
)

// HeaderPrefix starts the first line of every lock artifact.
const HeaderPrefix = "# requirements-hash: "

// Reason explains a freshness verdict.
type Reason string

const (
	ReasonUpToDate            Reason = "up-to-date"
	ReasonMissingLock         Reason = "missing-lock"
	ReasonMissingRequirements Reason = "missing-requirements"
	ReasonHashMismatch        Reason = "hash-mismatch"
)

// Status is the outcome of Check.
type Status struct {
	// Fresh is true only when both files exist and the hashes match.
	Fresh bool
	// Reason names why the lock is or is not fresh.
	Reason Reason
	// Hash is the current requirements hash, empty when the file is missing.
	Hash string
	// LockedHash is the hash recorded in the lock, empty when absent.
	LockedHash string
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile hashes the bytes of the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// Header returns the first line written for hash, including the newline.
func Header(hash string) string {
	return HeaderPrefix + hash + "\n"
}

// ReadHash returns the hash recorded in the first line of the lock at path,
// or "" when the first line is not a hash header.
func ReadHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		// Empty file.
		return "", nil
	}

	line = strings.TrimRight(line, "\r\n")
	hash, ok := strings.CutPrefix(line, HeaderPrefix)
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(hash), nil
}

// Check compares the requirements file against the lock artifact.
// Missing files are verdicts, not errors; only unexpected I/O failures are
// returned.
func Check(requirementsPath, lockPath string) (Status, error) {
	hash, err := HashFile(requirementsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Status{Reason: ReasonMissingRequirements}, nil
		}
		return Status{}, fmt.Errorf("failed to hash %q: %w", requirementsPath, err)
	}

	locked, err := ReadHash(lockPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Status{Reason: ReasonMissingLock, Hash: hash}, nil
		}
		return Status{}, fmt.Errorf("failed to read lock %q: %w", lockPath, err)
	}

	if locked != hash {
		return Status{Reason: ReasonHashMismatch, Hash: hash, LockedHash: locked}, nil
	}
	return Status{Fresh: true, Reason: ReasonUpToDate, Hash: hash, LockedHash: locked}, nil
}

// Write replaces the lock at path with the hash header followed by body.
// An empty body produces a header-only lock.
func Write(path, hash string, body []byte) error {
	var sb strings.Builder
	sb.Grow(len(HeaderPrefix) + len(hash) + 1 + len(body))
	sb.WriteString(Header(hash))
	sb.Write(body)

	if err := os.WriteFile(path, []byte(sb.String()), core.PermFile); err != nil {
		return fmt.Errorf("failed to write lock %q: %w", path, err)
	}
	return nil
}
