package restlite

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-rest-lite/internal/logger"
	"github.com/MKhiriev/go-rest-lite/internal/utils"
)

const defaultMimeType = "text/html; charset=utf-8"

// Response finalizes a request. It is an http.ResponseWriter, so it can also
// be handed to code written against net/http.
//
// Finalizing twice is a caller error: the second status is dropped by
// net/http and the body bytes are appended.
type Response struct {
	w            http.ResponseWriter
	responseType string

	status  int
	written bool

	logger *logger.Logger
}

func newResponse(w http.ResponseWriter, responseType string, log *logger.Logger) *Response {
	return &Response{
		w:            w,
		responseType: responseType,
		logger:       log,
	}
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.w.Header()
}

// WriteHeader sends the status line.
func (r *Response) WriteHeader(code int) {
	r.status = code
	r.written = true
	r.w.WriteHeader(code)
}

// Write writes body bytes, sending 200 first when no status was written.
func (r *Response) Write(b []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	return r.w.Write(b)
}

// Written reports whether a status has been sent.
func (r *Response) Written() bool {
	return r.written
}

// Status returns the status sent, or 0.
func (r *Response) Status() int {
	return r.status
}

// Send writes data with code. nil data sends the status alone. With the
// json response type data is encoded as JSON; otherwise []byte, string,
// io.Reader and fmt.Stringer are written as is and anything else is
// formatted with fmt.Sprint.
func (r *Response) Send(data any, code int) {
	if data == nil {
		r.WriteHeader(code)
		return
	}

	if r.responseType == ResponseJSON {
		if _, err := utils.WriteJSON(r, data, code); err != nil {
			r.logger.Error().Err(err).Int("status", code).Msg("response write failed")
		}
		return
	}

	r.WriteHeader(code)
	if err := writeRaw(r, data); err != nil {
		r.logger.Error().Err(err).Int("status", code).Msg("response write failed")
	}
}

// Shorthands for Send with a fixed status code.

func (r *Response) Continue(data any)     { r.Send(data, http.StatusContinue) }
func (r *Response) OK(data any)           { r.Send(data, http.StatusOK) }
func (r *Response) Created(data any)      { r.Send(data, http.StatusCreated) }
func (r *Response) NoContent(data any)    { r.Send(data, http.StatusNoContent) }
func (r *Response) Moved(data any)        { r.Send(data, http.StatusMovedPermanently) }
func (r *Response) Found(data any)        { r.Send(data, http.StatusFound) }
func (r *Response) Bad(data any)          { r.Send(data, http.StatusBadRequest) }
func (r *Response) Unauthorized(data any) { r.Send(data, http.StatusUnauthorized) }
func (r *Response) Forbidden(data any)    { r.Send(data, http.StatusForbidden) }
func (r *Response) NotFound(data any)     { r.Send(data, http.StatusNotFound) }
func (r *Response) MaxLimit(data any)     { r.Send(data, http.StatusTooManyRequests) }
func (r *Response) Error(data any)        { r.Send(data, http.StatusInternalServerError) }

// Render writes content with code and mimeType, text/html when empty,
// regardless of the response type.
func (r *Response) Render(code int, content any, mimeType string) {
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	r.Header().Set("Content-Type", mimeType)
	r.WriteHeader(code)
	if content == nil {
		return
	}
	if err := writeRaw(r, content); err != nil {
		r.logger.Error().Err(err).Int("status", code).Msg("render failed")
	}
}

// RenderFile writes the file at path with code. The content type follows
// the file extension. An unreadable file sends the status alone.
func (r *Response) RenderFile(code int, path string) {
	data, mimeType, err := readAsset(path)
	if err != nil {
		r.logger.Error().Err(err).Str("file", path).Msg("render file failed")
		r.WriteHeader(code)
		return
	}
	r.Render(code, data, mimeType)
}

func readAsset(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	return data, mimeType, nil
}

func writeRaw(w io.Writer, data any) error {
	var err error
	switch v := data.(type) {
	case []byte:
		_, err = w.Write(v)
	case string:
		_, err = io.WriteString(w, v)
	case io.Reader:
		_, err = io.Copy(w, v)
	case fmt.Stringer:
		_, err = io.WriteString(w, v.String())
	default:
		_, err = fmt.Fprint(w, v)
	}
	return err
}
