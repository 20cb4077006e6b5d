package restlite

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
)

// hasJSONBody reports whether r is a non-GET request declaring a JSON
// content type: application/json or a structured "+json" type such as
// application/problem+json.
func hasJSONBody(r *http.Request) bool {
	if r.Method == http.MethodGet || r.Body == nil || r.Body == http.NoBody {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// parseBody reads a JSON object body of at most limit bytes. An empty or
// malformed body, or a JSON value that is not an object, yields an empty
// map. Only an oversized body is an error.
func parseBody(r *http.Request, limit int64) (map[string]any, error) {
	out := map[string]any{}
	if !hasJSONBody(r) {
		return out, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return out, nil
	}
	if int64(len(data)) > limit {
		return out, errBodyTooLarge
	}
	if len(data) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return map[string]any{}, nil
	}
	return out, nil
}
