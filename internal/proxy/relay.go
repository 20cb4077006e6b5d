// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-rest-lite/internal/logger"
	"github.com/MKhiriev/go-rest-lite/internal/utils"
	"github.com/go-resty/resty/v2"
)

// Relay is the resty based [Forwarder].
type Relay struct {
	client  *utils.HTTPClient
	tempDir string

	logger *logger.Logger
}

// NewRelay constructs a Relay. timeout bounds each outbound call, zero means
// no limit. Multipart uploads are spooled to tempDir, or to the system
// temporary directory when tempDir is empty.
func NewRelay(timeout time.Duration, tempDir string, logger *logger.Logger) *Relay {
	return &Relay{
		client:  utils.NewHTTPClient(timeout),
		tempDir: tempDir,
		logger:  logger,
	}
}

// Forward implements [Forwarder].
func (r *Relay) Forward(ctx context.Context, call Call) (int, error) {
	from := call.Request.Host + call.Request.URL.RequestURI()
	to := call.Target + call.URI

	r.logger.Info().
		Str("from", from).
		Str("to", to).
		Str("ip", call.ClientIP).
		Msg("proxy")

	var (
		resp *resty.Response
		err  error
	)
	if isMultipart(call.Request) {
		resp, err = r.relayMultipart(ctx, call)
	} else {
		resp, err = r.relayPlain(ctx, call)
	}
	if err != nil {
		return 0, err
	}

	body := resp.RawBody()
	defer body.Close()

	status, err := writeResponse(call.Sink, resp.StatusCode(), resp.Header(), body)
	if err != nil {
		if status == 0 {
			return 0, err
		}
		r.logger.Warn().Err(err).Str("to", to).Msg("proxy response copy interrupted")
	}

	r.logger.Info().
		Str("from", to).
		Str("to", from).
		Int("status", status).
		Str("ip", call.ClientIP).
		Msg("proxy")

	return status, nil
}

func (r *Relay) relayPlain(ctx context.Context, call Call) (*resty.Response, error) {
	req := r.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeaderMultiValues(outboundHeaders(call.Request))

	switch {
	case call.JSON != nil:
		payload, err := json.Marshal(call.JSON)
		if err != nil {
			return nil, fmt.Errorf("%w: encode json body: %w", ErrUpstream, err)
		}
		req.SetBody(payload)
	case hasBody(call.Request):
		req.SetBody(call.Request.Body)
	}

	resp, err := req.Execute(call.Request.Method, call.Target+call.URI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return resp, nil
}

// writeResponse sends the upstream answer to sink. JSON bodies are decoded
// and passed to Send with the upstream status; anything else, including JSON
// that fails to decode, is written raw with the upstream headers.
func writeResponse(sink Sink, status int, header http.Header, body io.Reader) (int, error) {
	if isJSON(header.Get("Content-Type")) {
		raw, err := io.ReadAll(body)
		if err != nil {
			return 0, fmt.Errorf("%w: read json body: %w", ErrUpstream, err)
		}

		var data any
		if len(raw) > 0 && json.Unmarshal(raw, &data) == nil {
			sink.Send(data, status)
			return status, nil
		}

		copyResponseHeaders(sink.Header(), header)
		sink.Header().Del("Content-Length")
		sink.WriteHeader(status)
		_, err = sink.Write(raw)
		return status, err
	}

	copyResponseHeaders(sink.Header(), header)
	sink.WriteHeader(status)
	_, err := io.Copy(sink, body)
	return status, err
}

func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

func isMultipart(r *http.Request) bool {
	if r.Method == http.MethodGet {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
