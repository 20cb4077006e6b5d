// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RouteInfo describes one registered path in a route table snapshot.
type RouteInfo struct {
	// Key is the normalized path key, e.g. "/users/*".
	Key string `json:"key"`

	// Template is the path as it was registered, e.g. "/users/:id".
	Template string `json:"template"`

	// Params lists the capture names of the template in order.
	Params []string `json:"params,omitempty"`

	// Methods holds one entry per registered verb, sorted by verb.
	Methods []MethodInfo `json:"methods"`

	// Whitelisted reports whether guards are skipped for the path.
	Whitelisted bool `json:"whitelisted,omitempty"`
}

// MethodInfo describes a verb handler of a route.
type MethodInfo struct {
	Method string `json:"method"`

	// Handler is the fully qualified name of the handler function.
	Handler string `json:"handler"`

	// Guarded reports whether the method declares a permission predicate.
	Guarded bool `json:"guarded,omitempty"`
}

// ForwardInfo describes a gateway route.
type ForwardInfo struct {
	Key    string `json:"key"`
	Target string `json:"target"`
	Swap   string `json:"swap,omitempty"`
}
