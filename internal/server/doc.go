// Package server runs the HTTP listener of a RestLite server.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown. Request handling is supplied by the caller as an http.Handler.
package server
