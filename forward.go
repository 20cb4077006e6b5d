package restlite

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-rest-lite/internal/gateway"
	"github.com/MKhiriev/go-rest-lite/models"
)

// ForwardRoute is a gateway route under construction. Requests reach the
// relay only once To has set a target.
type ForwardRoute struct {
	server *Server
	entry  *gateway.Entry
}

// Forward registers a gateway route for path. Matching requests are relayed
// before route matching, so a forward shadows any API route it covers.
func (s *Server) Forward(path string) (*ForwardRoute, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	e, err := s.forwards.Add(path)
	if err != nil {
		if errors.Is(err, gateway.ErrDuplicatePath) {
			return nil, fmt.Errorf("%w: %s", ErrPathInUse, path)
		}
		return nil, err
	}
	return &ForwardRoute{server: s, entry: e}, nil
}

// Swap replaces the route's path prefix in the outbound URI with prefix.
func (f *ForwardRoute) Swap(prefix string) *ForwardRoute {
	f.server.mustBeOpen("ForwardRoute.Swap")
	f.entry.Swap = prefix
	return f
}

// To sets the base URL requests are relayed to.
func (f *ForwardRoute) To(target string) error {
	if err := f.server.ensureOpen(); err != nil {
		return err
	}
	if err := f.entry.SetTarget(target); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}
	return nil
}

// Key returns the normalized key of the route.
func (f *ForwardRoute) Key() string {
	return f.entry.Key
}

// Forwards returns the gateway routes in registration order.
func (s *Server) Forwards() []models.ForwardInfo {
	entries := s.forwards.Entries()
	out := make([]models.ForwardInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ForwardInfo{Key: e.Key, Target: e.Target, Swap: e.Swap})
	}
	return out
}
