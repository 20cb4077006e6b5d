// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "strings"

// WildcardToken is the key fragment that stands in for any single path segment.
const WildcardToken = "*"

// Segment describes one compiled path segment.
//
// A literal segment carries the case-folded text in Literal. A wildcard
// segment has Wildcard set and, when it was declared as ":name", the capture
// name in Capture. A segment with a non-empty Capture is always a wildcard.
type Segment struct {
	Literal  string
	Capture  string
	Wildcard bool
}

// Template is the compiled form of a route string such as "/users/:id/orders".
type Template struct {
	// Raw is the route string as it was registered.
	Raw string

	// Key is the normalized lookup key: literal segments joined with "/",
	// wildcard segments rendered as "*". The root path compiles to "/".
	Key string

	// Segments is the ordered list of segment descriptors.
	Segments []Segment

	// HasWildcard reports whether at least one segment is a wildcard.
	HasWildcard bool
}

// Compile turns a route string into a [Template].
//
// The path is split on "/" and empty segments are dropped. A segment starting
// with ":" becomes a wildcard capturing under the rest of the segment, a bare
// "*" becomes an anonymous wildcard and everything else is a literal. Literals
// are always case-folded; capture names are folded too unless keepCase is set.
//
// Two route strings with the same wildcard shape ("/users/:id" and
// "/users/:name") compile to the same Key.
func Compile(path string, keepCase bool) Template {
	parts := SplitPath(path)

	tpl := Template{
		Raw:      path,
		Segments: make([]Segment, 0, len(parts)),
	}

	keyParts := make([]string, 0, len(parts))
	for _, part := range parts {
		switch {
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if !keepCase {
				name = strings.ToLower(name)
			}
			tpl.Segments = append(tpl.Segments, Segment{Capture: name, Wildcard: true})
			keyParts = append(keyParts, WildcardToken)
			tpl.HasWildcard = true
		case part == WildcardToken:
			tpl.Segments = append(tpl.Segments, Segment{Wildcard: true})
			keyParts = append(keyParts, WildcardToken)
			tpl.HasWildcard = true
		default:
			literal := strings.ToLower(part)
			tpl.Segments = append(tpl.Segments, Segment{Literal: literal})
			keyParts = append(keyParts, literal)
		}
	}

	tpl.Key = joinKey(keyParts)
	return tpl
}

// SplitPath splits a slash separated path and drops empty segments, so
// "/users//42/" yields ["users", "42"].
func SplitPath(path string) []string {
	raw := strings.Split(path, "/")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// NormalizePath returns the case-folded lookup key of a request path.
func NormalizePath(path string) string {
	parts := SplitPath(path)
	for i := range parts {
		parts[i] = strings.ToLower(parts[i])
	}
	return joinKey(parts)
}

func joinKey(parts []string) string {
	return "/" + strings.Join(parts, "/")
}
