// Package version reports the pvx build version.
package version

import (
	"runtime/debug"
	"strings"
)

// version is set at build time with
// -ldflags "-X github.com/indaco/pvx/internal/version.version=1.2.3".
var version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, then the module version from the
// Go build info, then "dev".
func GetVersion() string {
	if version != "" {
		return strings.TrimPrefix(version, "v")
	}
	if info, ok := readBuildInfo(); ok && info != nil {
		v := info.Main.Version
		if v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return "dev"
}
