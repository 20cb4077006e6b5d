// Package http is the transport layer in front of the RestLite dispatcher.
//
// It builds a chi router with panic recovery, per-request trace ids, a debug
// access log and the optional Prometheus endpoint, and hands every other
// request to the dispatcher unchanged.
package http
