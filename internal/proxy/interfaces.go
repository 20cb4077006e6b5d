// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package proxy relays a request matched by a forward route to its remote
// target and writes the upstream answer back to the client.
//
// Three payload shapes are handled: bodyless calls, JSON or opaque bodies,
// and multipart/form-data uploads. JSON responses are decoded and handed to
// the caller's [Sink] so they go through the regular response path; every
// other response is streamed back with the upstream headers.
package proxy

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/forwarder_mock.go -package=mock

// Forwarder executes an outbound call for a forwarded request.
//
// Forward returns the status code written to call.Sink. A non-nil error means
// nothing has been written yet and the caller owns the error response.
type Forwarder interface {
	Forward(ctx context.Context, call Call) (int, error)
}

// Sink is where the relayed response goes.
type Sink interface {
	http.ResponseWriter

	// Send finalizes the response with data serialized the same way handler
	// responses are.
	Send(data any, code int)
}

// Call describes one relay.
type Call struct {
	// Request is the inbound request. Its body is consumed by the relay
	// unless JSON is set.
	Request *http.Request

	// Target is the base URL of the upstream, e.g. "http://localhost:2000".
	Target string

	// URI is the outbound path and query, after any swap rewrite.
	URI string

	// JSON is the parsed JSON body. When non-nil it is re-serialized instead
	// of streaming Request.Body.
	JSON map[string]any

	// ClientIP identifies the caller in relay logs.
	ClientIP string

	Sink Sink
}
