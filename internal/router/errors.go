package router

import "errors"

// ErrDuplicateKey is returned by Table.Insert when a template normalizes to a
// key that is already registered.
var ErrDuplicateKey = errors.New("key already in use")
