// Package params holds the sweep parameter model: entry parsing, Cartesian
// enumeration, per-combination contexts and the combination filter.
package params

import (
	"fmt"
	"strings"
)

// List is one sweep parameter: a name bound to its ordered candidate values.
type List struct {
	Name   string
	Values []any
}

// Pair is one parameter assignment within a combination.
type Pair struct {
	Name  string
	Value any
}

// SplitPair splits a key=value entry. Exactly one '=' is required; both sides
// are returned verbatim. No file I/O happens here, so malformed entries fail
// before anything is loaded.
func SplitPair(s string) (key, value string, err error) {
	if strings.Count(s, "=") != 1 {
		return "", "", fmt.Errorf("invalid entry %q: expected exactly one '='", s)
	}
	i := strings.Index(s, "=")
	key, value = s[:i], s[i+1:]
	if key == "" {
		return "", "", fmt.Errorf("invalid entry %q: empty parameter name", s)
	}
	return key, value, nil
}
