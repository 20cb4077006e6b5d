package proxy

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-rest-lite/internal/utils"
)

var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// removeHopHeaders drops hop-by-hop headers, including any listed in
// the Connection header.
func removeHopHeaders(h http.Header) {
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopHeaders {
		h.Del(name)
	}
}

// outboundHeaders builds the header set sent upstream for r.
//
// Accept-Encoding is dropped so the transport negotiates compression itself
// and JSON responses arrive decoded. Content-Length is recomputed by the
// transport. X-Forwarded-For gets the peer address appended, X-Forwarded-Host
// and X-Forwarded-Proto describe the inbound request.
func outboundHeaders(r *http.Request) http.Header {
	h := r.Header.Clone()
	if h == nil {
		h = http.Header{}
	}

	removeHopHeaders(h)
	h.Del("Accept-Encoding")
	h.Del("Content-Length")

	peer := utils.PeerIP(r)
	if prior := h.Get("X-Forwarded-For"); prior != "" {
		h.Set("X-Forwarded-For", prior+", "+peer)
	} else {
		h.Set("X-Forwarded-For", peer)
	}
	h.Set("X-Forwarded-Host", r.Host)
	h.Set("X-Forwarded-Proto", utils.Scheme(r))

	return h
}

// copyResponseHeaders copies upstream headers verbatim, minus hop-by-hop ones.
func copyResponseHeaders(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
	removeHopHeaders(dst)
}
