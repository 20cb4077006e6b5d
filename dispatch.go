// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package restlite

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/MKhiriev/go-rest-lite/internal/gateway"
	"github.com/MKhiriev/go-rest-lite/internal/logger"
	"github.com/MKhiriev/go-rest-lite/internal/metrics"
	"github.com/MKhiriev/go-rest-lite/internal/proxy"
	"github.com/MKhiriev/go-rest-lite/internal/utils"
)

// dispatch runs the request phases in order and stops at the first one
// that answers: OPTIONS, gateway, route match, guards, body, method guards,
// handler.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	res := newResponse(w, s.cfg.ResponseType, log)
	outcome := metrics.OutcomeRoute
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			outcome = metrics.OutcomePanic
			log.Error().
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Str("uri", r.URL.RequestURI()).
				Msg("handler panicked")
			if !res.Written() {
				s.endResolve(res, http.StatusInternalServerError, "Internal Server Error")
			}
		}

		status := res.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(outcome, status, time.Since(start))
	}()

	for k, v := range s.headers {
		res.Header()[k] = append([]string(nil), v...)
	}

	if r.Method == http.MethodOptions {
		outcome = metrics.OutcomeOptions
		res.WriteHeader(http.StatusOK)
		return
	}

	if entry, ok := s.forwards.Resolve(r.URL.Path); ok {
		outcome = metrics.OutcomeGateway
		s.relay(res, r, entry)
		return
	}

	m, ok := s.routes.MatchRoute(r.URL.Path, s.cfg.KeepWildcardCase, func(c *Controller) bool {
		return c.method(r.Method) != nil
	})
	var method *Method
	if ok {
		method = m.Entry.Value.method(r.Method)
	}
	if method == nil {
		outcome = metrics.OutcomeNotFound
		log.Debug().Str("method", r.Method).Str("uri", r.URL.RequestURI()).Msg("no route")
		s.endResolve(res, http.StatusNotFound, "Path not found.")
		return
	}

	req := newRequest(r)
	req.Params = m.Params
	req.Route = m.Entry.Template.Key

	if !s.whitelisted(req.Route) && !s.authorize(req, res) {
		outcome = metrics.OutcomeGuardDenied
		return
	}

	body, err := parseBody(r, s.cfg.BodyLimit)
	if err != nil {
		s.denialLog(log).Warn().Err(err).Str("route", req.Route).Int64("limit", s.cfg.BodyLimit).Msg("body rejected")
		s.endResolve(res, http.StatusRequestEntityTooLarge, "Payload Too Large")
		return
	}
	req.JSON = body

	if !s.permitted(req, method) {
		outcome = metrics.OutcomePermissionDenied
		s.metrics.GuardDenied(metrics.DenialMethod)
		s.denialLog(log).Warn().
			Str("route", req.Route).
			Str("method", r.Method).
			Str("ip", req.ClientIP()).
			Msg("method guard denied")
		s.endResolve(res, http.StatusUnauthorized, "Permission Denied")
		return
	}

	log.Debug().
		Str("method", r.Method).
		Str("route", req.Route).
		Str("uri", req.OriginalURL).
		Str("ip", req.ClientIP()).
		Msg("request")

	method.Handler(req, res, req.Query)
}

// relay hands the request to the forwarder. Guards and route matching do
// not apply to forwarded requests.
func (s *Server) relay(res *Response, r *http.Request, entry *gateway.Entry) {
	call := proxy.Call{
		Request:  r,
		Target:   entry.Target,
		URI:      entry.Rewrite(r.URL.RequestURI()),
		ClientIP: utils.ClientIP(r),
		Sink:     res,
	}

	if hasJSONBody(r) {
		body, err := parseBody(r, s.cfg.BodyLimit)
		if err != nil {
			s.endResolve(res, http.StatusRequestEntityTooLarge, "Payload Too Large")
			return
		}
		call.JSON = body
	}

	if _, err := s.relayer.Forward(r.Context(), call); err != nil {
		s.metrics.Proxied(metrics.ProxyError)
		res.logger.Error().
			Err(err).
			Str("from", r.URL.RequestURI()).
			Str("to", entry.Target+call.URI).
			Str("ip", call.ClientIP).
			Msg("proxy error")
		if !res.Written() {
			s.endResolve(res, http.StatusInternalServerError, "Gateway Error")
		}
		return
	}
	s.metrics.Proxied(metrics.ProxyOK)
}
