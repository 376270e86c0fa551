// Package discovery locates the pvx project that owns a directory and probes
// the Python manifests that live next to it (pyproject.toml, .python-version).
//
// The project root is the nearest ancestor containing pvx.yaml. When no
// ancestor has one, the starting directory is used as the root and
// Root.Found reports false; that is "no project configured", not an error.
package discovery
