// Package router compiles path templates and resolves request paths against
// insertion-ordered tables of them.
//
// A template such as "/users/:id" is compiled into a normalized key
// ("/users/*") plus one descriptor per segment. Tables store templates in
// registration order and support two lookups:
//
//   - route mode (MatchRoute): exact key first, then the first wildcard
//     template with the same segment count whose literals match;
//   - guard mode (MatchGuard): exact key first, then the first wildcard
//     template that walks through the route key, treating wildcards as
//     optional so shorter templates act as prefixes.
//
// Both lookups are first-match, not most-specific.
package router
