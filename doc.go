// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package restlite is an embeddable HTTP server core. It routes requests to
// handlers by path template and verb, runs an ordered chain of guards before
// a handler is reached, and can relay whole path prefixes to a remote host
// instead, including multipart uploads.
//
// # Lifecycle
//
// A [Server] is configured first and served afterwards. Routes, guards,
// whitelists, forwards, fallbacks and headers are registered on the server
// before [Server.Handler] or [Server.Serve] is called. Either call freezes
// the server: further registration fails with [ErrServerFrozen], and the
// fluent builders ([Controller], [FallbackAction], [ForwardRoute]) panic.
//
//	srv, err := restlite.New(restlite.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	users, err := srv.At("/users/:id")
//	if err != nil {
//	    return err
//	}
//	users.Get(func(req *restlite.Request, res *restlite.Response, _ url.Values) {
//	    res.OK(map[string]string{"id": req.Param("id")})
//	})
//
//	return srv.Serve(ctx)
//
// # Paths
//
// Templates are split on "/" with empty segments dropped. A ":name" segment
// captures one request segment, "*" matches one without capturing, anything
// else is a literal compared case-insensitively. Each template is reduced to
// a key in which captures become "*", so "/users/:id" and "/Users/:name"
// are the same path and cannot both be registered.
//
// # Request phases
//
// Every request passes through the same phases, each of which may end it:
//
//  1. global headers are applied and OPTIONS is answered with 200
//  2. the forward table is consulted; a hit relays the request
//  3. the route table is matched; a miss ends with 404
//  4. unless the route is whitelisted, the guard entry for the route runs
//  5. a JSON body is decoded into Request.JSON
//  6. method guards run when the route method declares a permission
//  7. the handler runs
//
// Requests the server ends on its own get a JSON envelope such as
// {"error":404,"message":"Path not found."}, unless a fallback was
// registered for the code with [Server.On].
package restlite
