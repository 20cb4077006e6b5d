package restlite

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-rest-lite/internal/router"
)

// HandlerFunc handles a routed request. query is the parsed query string,
// the same value as req.Query.
type HandlerFunc func(req *Request, res *Response, query url.Values)

// Predicate decides whether a request may proceed. Predicates that block
// should honor req.Context(), which is cancelled when the client goes away.
type Predicate func(req *Request) bool

// Method is a handler registered for one verb of a [Controller].
type Method struct {
	Handler HandlerFunc

	// Permission, when set, makes the global method guards and then itself
	// run before Handler.
	Permission Predicate
}

// Controller groups the verb handlers of one path.
type Controller struct {
	server  *Server
	tpl     router.Template
	methods map[string]*Method
}

// At registers path and returns its controller. Paths that reduce to the
// same key, such as "/users/:id" and "/users/:name", fail with
// ErrPathInUse.
func (s *Server) At(path string) (*Controller, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	tpl := router.Compile(path, s.cfg.KeepWildcardCase)
	c := &Controller{
		server:  s,
		tpl:     tpl,
		methods: make(map[string]*Method),
	}

	if _, err := s.routes.Insert(tpl, c); err != nil {
		if errors.Is(err, router.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrPathInUse, tpl.Key)
		}
		return nil, err
	}
	return c, nil
}

// Key returns the normalized path key, e.g. "/users/*".
func (c *Controller) Key() string {
	return c.tpl.Key
}

// Get registers h for GET. The optional predicate becomes the method's
// permission.
func (c *Controller) Get(h HandlerFunc, permission ...Predicate) *Controller {
	return c.handle(http.MethodGet, h, permission)
}

// Post registers h for POST.
func (c *Controller) Post(h HandlerFunc, permission ...Predicate) *Controller {
	return c.handle(http.MethodPost, h, permission)
}

// Put registers h for PUT.
func (c *Controller) Put(h HandlerFunc, permission ...Predicate) *Controller {
	return c.handle(http.MethodPut, h, permission)
}

// Patch registers h for PATCH.
func (c *Controller) Patch(h HandlerFunc, permission ...Predicate) *Controller {
	return c.handle(http.MethodPatch, h, permission)
}

// Delete registers h for DELETE.
func (c *Controller) Delete(h HandlerFunc, permission ...Predicate) *Controller {
	return c.handle(http.MethodDelete, h, permission)
}

// handle replaces any handler already registered for verb.
func (c *Controller) handle(verb string, h HandlerFunc, permission []Predicate) *Controller {
	c.server.mustBeOpen(verb + " " + c.tpl.Raw)
	if h == nil {
		panic("restlite: nil handler for " + verb + " " + c.tpl.Raw)
	}

	m := &Method{Handler: h}
	if len(permission) > 0 {
		m.Permission = permission[0]
	}
	c.methods[verb] = m
	return c
}

func (c *Controller) method(verb string) *Method {
	return c.methods[verb]
}
