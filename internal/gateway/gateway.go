// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gateway holds the forward table: path keys whose traffic is relayed
// to a remote host instead of being dispatched locally.
//
// Keys are compiled with the router's path compiler, so "/api/:v/*" and
// "/API/*/*" collide. At request time the key cut at its first wildcard (the
// needle, "/api/" for "/api/*") is compared against the case-folded request
// path using the table's MatchMode.
package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-rest-lite/internal/router"
)

// Entry is a single forward route.
type Entry struct {
	// Key is the normalized path key, e.g. "/api/*".
	Key string

	// Target is the base URL requests are relayed to, without a trailing slash.
	Target string

	// Swap replaces the needle in the outbound URI when non-empty.
	Swap string

	needle string
}

// Needle returns the part of the key before its first wildcard marker.
func (e *Entry) Needle() string {
	return e.needle
}

// SetTarget validates and stores the relay target. Only absolute http and
// https URLs are accepted.
func (e *Entry) SetTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidTarget, target, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}

	e.Target = strings.TrimRight(target, "/")
	return nil
}

// Rewrite applies the swap to uri (path plus query) by replacing the first
// case-insensitive occurrence of the needle. The rest of uri keeps its case.
//
// A path equal to the needle without its trailing "/" (the bare "/api" for
// "/api/") is what prefix matching resolves as well, so it is swapped for the
// swap without its trailing "/". Without a swap, or when the needle does not
// occur, uri is returned as is.
func (e *Entry) Rewrite(uri string) string {
	if e.Swap == "" || e.needle == "" {
		return uri
	}

	lower := strings.ToLower(uri)
	path, _, _ := strings.Cut(lower, "?")
	if bare := strings.TrimRight(e.needle, "/"); bare != e.needle && path == bare {
		swap := strings.TrimRight(e.Swap, "/")
		if swap == "" {
			swap = "/"
		}
		return swap + uri[len(path):]
	}

	idx := strings.Index(lower, e.needle)
	if idx < 0 {
		return uri
	}
	return uri[:idx] + e.Swap + uri[idx+len(e.needle):]
}

// Table is the ordered set of forward routes.
type Table struct {
	mode    MatchMode
	entries *router.Table[*Entry]
}

// NewTable returns an empty table using mode for request matching.
func NewTable(mode MatchMode) *Table {
	return &Table{
		mode:    mode,
		entries: router.NewTable[*Entry](),
	}
}

func needleOf(key string) string {
	if i := strings.Index(key, router.WildcardToken); i >= 0 {
		return key[:i]
	}
	return key
}

// Mode returns the table's match mode.
func (t *Table) Mode() MatchMode {
	return t.mode
}

// Add registers a forward route for path. Registering a path whose key is
// already taken fails with ErrDuplicatePath.
func (t *Table) Add(path string) (*Entry, error) {
	tpl := router.Compile(path, false)
	e := &Entry{
		Key:    tpl.Key,
		needle: needleOf(tpl.Key),
	}

	if _, err := t.entries.Insert(tpl, e); err != nil {
		if errors.Is(err, router.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, tpl.Key)
		}
		return nil, err
	}
	return e, nil
}

// Resolve returns the first entry, in registration order, whose needle
// matches path. Entries without a target are skipped.
func (t *Table) Resolve(path string) (*Entry, bool) {
	p := strings.ToLower(path)
	for _, te := range t.entries.Entries() {
		e := te.Value
		if e.Target == "" {
			continue
		}
		if t.mode.matches(p, e.needle) {
			return e, true
		}
	}
	return nil, false
}

// Entries returns the forward routes in registration order.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, 0, t.entries.Len())
	for _, te := range t.entries.Entries() {
		out = append(out, te.Value)
	}
	return out
}

// Len returns the number of registered forward routes.
func (t *Table) Len() int {
	return t.entries.Len()
}
