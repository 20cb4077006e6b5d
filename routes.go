package restlite

import (
	"reflect"
	"runtime"
	"sort"

	"github.com/MKhiriev/go-rest-lite/internal/router"
	"github.com/MKhiriev/go-rest-lite/models"
	"github.com/samber/lo"
)

// Routes returns a snapshot of the route table sorted by key. It is safe to
// call at any time and shares no state with the server.
func (s *Server) Routes() []models.RouteInfo {
	routes := lo.Map(s.routes.Entries(), func(e *router.Entry[*Controller], _ int) models.RouteInfo {
		c := e.Value

		verbs := lo.Keys(c.methods)
		sort.Strings(verbs)

		params := lo.FilterMap(c.tpl.Segments, func(seg router.Segment, _ int) (string, bool) {
			return seg.Capture, seg.Capture != ""
		})

		return models.RouteInfo{
			Key:      c.tpl.Key,
			Template: c.tpl.Raw,
			Params:   params,
			Methods: lo.Map(verbs, func(verb string, _ int) models.MethodInfo {
				m := c.methods[verb]
				return models.MethodInfo{
					Method:  verb,
					Handler: funcName(m.Handler),
					Guarded: m.Permission != nil,
				}
			}),
			Whitelisted: s.whitelisted(c.tpl.Key),
		}
	})

	sort.Slice(routes, func(i, j int) bool { return routes[i].Key < routes[j].Key })
	return routes
}

func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}
