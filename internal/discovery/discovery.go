package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

// statFn is swapped in tests.
var statFn = os.Stat

// FindRoot walks from start up to the filesystem root and returns the first
// directory containing MarkerFile. Without a match the absolute start
// directory is returned with Found=false.
func FindRoot(start string) (Root, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return Root{}, fmt.Errorf("failed to resolve %q: %w", start, err)
	}

	dir := abs
	for {
		if isFile(filepath.Join(dir, MarkerFile)) {
			return Root{Dir: dir, Found: true}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return Root{Dir: abs}, nil
}

// FindRootFromCwd runs FindRoot from the current working directory.
func FindRootFromCwd() (Root, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Root{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindRoot(cwd)
}

func isFile(path string) bool {
	info, err := statFn(path)
	return err == nil && info.Mode().IsRegular()
}
