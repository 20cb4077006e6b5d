// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package restlite

import (
	"net/http"

	"github.com/MKhiriev/go-rest-lite/internal/metrics"
	"github.com/MKhiriev/go-rest-lite/internal/router"
)

type guardKind int

const (
	guardNoFallback guardKind = iota
	guardRedirect
	guardRenderFile
)

// GuardSettings tells a guard what to answer when its predicate fails. The
// zero value is [NoFallback].
type GuardSettings struct {
	kind   guardKind
	target string
}

// NoFallback answers a failed guard with the 401 envelope, or the 401
// fallback when one is registered.
func NoFallback() GuardSettings {
	return GuardSettings{}
}

// RedirectTo answers a failed guard with a 302 to url.
func RedirectTo(url string) GuardSettings {
	return GuardSettings{kind: guardRedirect, target: url}
}

// RenderFile answers a failed guard with 401 and the file at path. A missing
// file falls back to NoFallback.
func RenderFile(path string) GuardSettings {
	return GuardSettings{kind: guardRenderFile, target: path}
}

type guardRule struct {
	pred     Predicate
	settings GuardSettings
}

// guardEntry is the ordered rule list of one guard key.
type guardEntry struct {
	rules []guardRule
}

// SetGuard adds pred to the guard entry for path, creating the entry on
// first use. Paths may contain wildcards; "*" or "" guard every route.
// Predicates added to the same key run in the order they were added.
//
// For each request only one entry applies: the first entry, in registration
// order, that equals the route key or whose wildcard segments cover it.
func (s *Server) SetGuard(pred Predicate, path string, settings GuardSettings) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if pred == nil {
		return ErrNilPredicate
	}
	if path == "" {
		path = router.WildcardToken
	}

	tpl := router.Compile(path, false)
	rule := guardRule{pred: pred, settings: settings}

	if e, ok := s.guards.Get(tpl.Key); ok {
		e.Value.rules = append(e.Value.rules, rule)
		return nil
	}
	_, err := s.guards.Insert(tpl, &guardEntry{rules: []guardRule{rule}})
	return err
}

// SetMethodGuard adds a predicate that runs, in registration order, before
// the permission predicate of every route method that declares one.
func (s *Server) SetMethodGuard(pred Predicate) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if pred == nil {
		return ErrNilPredicate
	}
	s.methodGuards = append(s.methodGuards, pred)
	return nil
}

// SetWhitelist exempts the route registered as path from guards. The
// comparison is on the normalized key, so "/users/:id" and "/users/*" name
// the same route.
func (s *Server) SetWhitelist(path string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.whitelist[router.Compile(path, false).Key] = struct{}{}
	return nil
}

// SetWhitelists calls SetWhitelist for every path.
func (s *Server) SetWhitelists(paths []string) error {
	for _, p := range paths {
		if err := s.SetWhitelist(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) whitelisted(key string) bool {
	_, ok := s.whitelist[key]
	return ok
}

// authorize runs the guard entry for req.Route. It reports false after it
// has answered the request.
func (s *Server) authorize(req *Request, res *Response) bool {
	entry, ok := s.guards.MatchGuard(req.Route)
	if !ok {
		return true
	}

	log := s.denialLog(res.logger)
	for _, rule := range entry.Value.rules {
		if rule.pred(req) {
			continue
		}

		switch rule.settings.kind {
		case guardRedirect:
			s.metrics.GuardDenied(metrics.DenialRedirect)
			log.Warn().
				Str("route", req.Route).
				Str("guard", entry.Template.Key).
				Str("location", rule.settings.target).
				Str("ip", req.ClientIP()).
				Msg("guard denied")
			res.Header().Set("Location", rule.settings.target)
			res.WriteHeader(http.StatusFound)
			return false

		case guardRenderFile:
			if data, mimeType, err := readAsset(rule.settings.target); err == nil {
				s.metrics.GuardDenied(metrics.DenialRenderFile)
				log.Warn().
					Str("route", req.Route).
					Str("guard", entry.Template.Key).
					Str("file", rule.settings.target).
					Str("ip", req.ClientIP()).
					Msg("guard denied")
				res.Render(http.StatusUnauthorized, data, mimeType)
				return false
			}
		}

		s.metrics.GuardDenied(metrics.DenialEnvelope)
		log.Warn().
			Str("route", req.Route).
			Str("guard", entry.Template.Key).
			Str("ip", req.ClientIP()).
			Msg("guard denied")
		s.endResolve(res, http.StatusUnauthorized, "Not Authenticated")
		return false
	}

	return true
}

// permitted runs the method guards and then the method's own permission.
// Methods without a permission skip both.
func (s *Server) permitted(req *Request, m *Method) bool {
	if m.Permission == nil {
		return true
	}
	for _, g := range s.methodGuards {
		if !g(req) {
			return false
		}
	}
	return m.Permission(req)
}
