package config

import (
	"bytes"
	"strings"

	"github.com/goccy/go-yaml"
)

var utf8BOM = []byte("\ufeff")

// parseState tracks which mapping the next line belongs to.
type parseState int

const (
	stateTop parseState = iota
	stateScripts
)

// Parse decodes pvx.yaml content. It is permissive: comments, blank lines
// and lines without a colon are skipped, and it never fails.
func Parse(data []byte) *Config {
	cfg := Empty()
	state := stateTop

	data = bytes.TrimPrefix(data, utf8BOM)
	for raw := range bytes.SplitSeq(data, []byte("\n")) {
		line := strings.TrimRight(string(raw), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indented := line[0] == ' ' || line[0] == '\t'
		key, value, ok := splitKeyValue(trimmed)

		if !indented {
			state = stateTop
			if !ok {
				continue
			}
			if key == KeyScripts {
				state = stateScripts
				continue
			}
			cfg.values[key] = value
			continue
		}

		if state == stateScripts && ok {
			cfg.scripts[key] = value
		}
	}

	return cfg
}

// splitKeyValue splits "key: value" and decodes the value.
func splitKeyValue(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(k)
	if key == "" {
		return "", "", false
	}
	return key, parseValue(v), true
}

// parseValue decodes a scalar. Values wrapped in matching quotes follow YAML
// quoted-scalar escaping; unquoted values lose a trailing " # comment".
func parseValue(raw string) string {
	v := strings.TrimSpace(raw)
	if s, ok := unquote(v); ok {
		return s
	}

	if i := commentIndex(raw); i >= 0 {
		v = strings.TrimSpace(raw[:i])
	}
	if s, ok := unquote(v); ok {
		return s
	}
	return v
}

// commentIndex returns the index of the first '#' preceded by whitespace.
func commentIndex(v string) int {
	for i := 1; i < len(v); i++ {
		if v[i] == '#' && (v[i-1] == ' ' || v[i-1] == '\t') {
			return i
		}
	}
	return -1
}

func unquote(v string) (string, bool) {
	if len(v) < 2 {
		return "", false
	}
	first, last := v[0], v[len(v)-1]
	if first != last || (first != '"' && first != '\'') {
		return "", false
	}

	var s string
	if err := yaml.Unmarshal([]byte(v), &s); err != nil {
		// Broken escapes: keep the inner text verbatim.
		return v[1 : len(v)-1], true
	}
	return s, true
}
