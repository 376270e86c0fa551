package operations

import (
	"errors"
	"fmt"

	"github.com/indaco/pvx/internal/requirements"
)

// ErrNoMatch is returned when none of the names to remove is declared.
var ErrNoMatch = errors.New("no matching packages")

// EditResult lists what a requirements edit changed.
type EditResult struct {
	// Changed holds the lines added or the names removed.
	Changed []string
	// Skipped holds duplicate lines or names that matched nothing.
	Skipped []string
}

// AddRequirements appends lines to the requirements file at path. Lines
// already present verbatim are skipped. The file is written only when
// something was added.
func AddRequirements(path string, lines []string) (*EditResult, error) {
	file, err := requirements.Load(path)
	if err != nil {
		return nil, err
	}

	result := &EditResult{}
	for _, line := range lines {
		if file.Append(line) {
			result.Changed = append(result.Changed, line)
		} else {
			result.Skipped = append(result.Skipped, line)
		}
	}

	if len(result.Changed) > 0 {
		if err := file.Save(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// RemoveRequirements drops every line declaring one of names. It fails when
// none of the names matched a line.
func RemoveRequirements(path string, names []string) (*EditResult, error) {
	file, err := requirements.Load(path)
	if err != nil {
		return nil, err
	}

	result := &EditResult{}
	for _, name := range names {
		if file.Remove(name) > 0 {
			result.Changed = append(result.Changed, name)
		} else {
			result.Skipped = append(result.Skipped, name)
		}
	}

	if len(result.Changed) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMatch, path)
	}
	if err := file.Save(); err != nil {
		return nil, err
	}
	return result, nil
}
