// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "strings"

// Match is the result of a successful route lookup.
type Match[V any] struct {
	Entry *Entry[V]

	// Params maps capture names to the request segments they matched.
	// It is empty, never nil, for literal routes.
	Params map[string]string
}

// MatchRoute resolves a request path against the table.
//
// The case-folded path is first looked up as an exact key; the hit is used
// only when accept reports true for its value (accept may be nil). Otherwise
// wildcard entries with the same number of segments as the request are
// scanned in registration order. Literal segments compare against the
// case-folded request segment, wildcard segments match any segment. The first
// entry that matches every segment wins.
//
// Captured values keep the request's case only when keepCase is set.
func (t *Table[V]) MatchRoute(path string, keepCase bool, accept func(V) bool) (Match[V], bool) {
	parts := SplitPath(path)
	folded := make([]string, len(parts))
	for i, p := range parts {
		folded[i] = strings.ToLower(p)
	}

	if e, ok := t.index[joinKey(folded)]; ok && (accept == nil || accept(e.Value)) {
		return Match[V]{Entry: e, Params: capture(e.Template, parts, folded, keepCase)}, true
	}

	for _, e := range t.entries {
		tpl := e.Template
		if !tpl.HasWildcard || len(tpl.Segments) != len(folded) {
			continue
		}
		if !segmentsMatch(tpl.Segments, folded) {
			continue
		}
		return Match[V]{Entry: e, Params: capture(tpl, parts, folded, keepCase)}, true
	}

	return Match[V]{}, false
}

// MatchGuard resolves the single entry that applies to an already-resolved
// route key such as "/users/*".
//
// Entries are scanned in registration order and the first one that applies
// wins, even when a later entry is more specific. A literal entry applies only
// when its key equals the given key. A wildcard entry is walked segment by
// segment against the key: a literal must be equal, a wildcard accepts any
// segment including a missing one. Entry segments beyond the end of the key
// must therefore be wildcards, and extra key segments are ignored, so "/api/*"
// applies to "/api/users/*" and "/*" applies to every key.
func (t *Table[V]) MatchGuard(key string) (*Entry[V], bool) {
	parts := SplitPath(key)
	for _, e := range t.entries {
		if !e.Template.HasWildcard {
			if e.Template.Key == key {
				return e, true
			}
			continue
		}
		if prefixMatch(e.Template.Segments, parts) {
			return e, true
		}
	}

	return nil, false
}

func segmentsMatch(segs []Segment, parts []string) bool {
	for i, seg := range segs {
		if seg.Wildcard {
			continue
		}
		if seg.Literal != parts[i] {
			return false
		}
	}
	return true
}

func prefixMatch(segs []Segment, parts []string) bool {
	for i, seg := range segs {
		if seg.Wildcard {
			continue
		}
		if i >= len(parts) || seg.Literal != parts[i] {
			return false
		}
	}
	return true
}

func capture(tpl Template, raw, folded []string, keepCase bool) map[string]string {
	params := make(map[string]string)
	for i, seg := range tpl.Segments {
		if seg.Capture == "" || i >= len(raw) {
			continue
		}
		if keepCase {
			params[seg.Capture] = raw[i]
		} else {
			params[seg.Capture] = folded[i]
		}
	}
	return params
}
