// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter is a thin decorator around [http.ResponseWriter] that
// records the final status code and the number of body bytes written, so
// withLogging can report them after the dispatcher returns.
//
// Informational (1xx) headers are passed through without being recorded as
// the final status. Any later final status is forwarded once; subsequent
// calls are ignored.
type responseWriter struct {
	http.ResponseWriter

	// status is the final HTTP status code, zero until one is written.
	status int

	// wroteHeader reports whether a final status has been forwarded.
	wroteHeader bool

	// size is the running total of body bytes written.
	size int
}

// WriteHeader records a final status code and forwards it to the underlying
// writer exactly once.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	if statusCode >= 100 && statusCode < 200 && statusCode != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write implies a 200 status when none was written and accumulates size.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Flush lets streamed relay responses reach the client as they arrive.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
