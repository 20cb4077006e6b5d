package gateway

import (
	"fmt"
	"strings"
)

// MatchMode selects how a forward needle is compared with a request path.
type MatchMode string

const (
	// MatchPrefix matches when the request path equals the needle or starts
	// with it followed by a "/". A trailing "/" on the needle is ignored and an
	// empty needle matches every path.
	MatchPrefix MatchMode = "prefix"

	// MatchSubstring matches when the needle occurs anywhere in the path.
	MatchSubstring MatchMode = "substring"
)

// ParseMatchMode converts a configuration value to a MatchMode. An empty
// value yields MatchPrefix.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchPrefix:
		return MatchPrefix, nil
	case MatchSubstring:
		return MatchSubstring, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMatchMode, s)
	}
}

func (m MatchMode) matches(path, needle string) bool {
	if m == MatchSubstring {
		return strings.Contains(path, needle)
	}

	n := strings.TrimRight(needle, "/")
	if n == "" {
		return true
	}
	return path == n || strings.HasPrefix(path, n+"/")
}
