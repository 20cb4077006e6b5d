// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "fmt"

// Entry binds a compiled template to the value stored under its key.
type Entry[V any] struct {
	Template Template
	Value    V
}

// Table is an insertion-ordered map from normalized keys to values.
//
// Iteration and wildcard scans follow registration order, which is what
// makes "first match wins" deterministic. A Table is not safe for concurrent
// writes; it is built during startup and only read afterwards.
type Table[V any] struct {
	entries []*Entry[V]
	index   map[string]*Entry[V]
}

// NewTable returns an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{index: make(map[string]*Entry[V])}
}

// Insert adds value under tpl.Key. It fails with ErrDuplicateKey if the key
// is already taken.
func (t *Table[V]) Insert(tpl Template, value V) (*Entry[V], error) {
	if _, ok := t.index[tpl.Key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, tpl.Key)
	}

	e := &Entry[V]{Template: tpl, Value: value}
	t.entries = append(t.entries, e)
	t.index[tpl.Key] = e
	return e, nil
}

// Get returns the entry stored under key.
func (t *Table[V]) Get(key string) (*Entry[V], bool) {
	e, ok := t.index[key]
	return e, ok
}

// Entries returns the entries in registration order.
// The returned slice must not be modified.
func (t *Table[V]) Entries() []*Entry[V] {
	return t.entries
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	return len(t.entries)
}
