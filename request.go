package restlite

import (
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-rest-lite/internal/utils"
)

// SubjectKey is the Request value under which BearerJWT stores the token
// subject.
const SubjectKey = "subject"

// Request is the per-request state handed to guards and handlers. The
// embedded *http.Request is the inbound request; its Body has already been
// consumed when JSON is set.
type Request struct {
	*http.Request

	// Params maps capture names of the route template to request segments.
	Params map[string]string

	// JSON is the decoded body of a JSON request, empty otherwise.
	JSON map[string]any

	// Query is the parsed query string.
	Query url.Values

	// OriginalURL is the request URI as received, before any swap.
	OriginalURL string

	// Route is the key of the matched route, empty for forwarded requests.
	Route string

	clientIP string
	values   map[string]any
}

func newRequest(r *http.Request) *Request {
	return &Request{
		Request:     r,
		Params:      map[string]string{},
		JSON:        map[string]any{},
		Query:       r.URL.Query(),
		OriginalURL: r.URL.RequestURI(),
		clientIP:    utils.ClientIP(r),
	}
}

// Param returns the value captured for name, or "".
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// ClientIP returns the first X-Forwarded-For entry, or the remote address.
func (r *Request) ClientIP() string {
	return r.clientIP
}

// Set stores a value for later phases of the same request, typically a
// guard passing data to the handler.
func (r *Request) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	r.values[key] = value
}

// Value returns a value stored with Set.
func (r *Request) Value(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}
