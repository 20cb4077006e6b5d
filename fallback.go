package restlite

import (
	"net/http"

	"github.com/MKhiriev/go-rest-lite/internal/utils"
	"github.com/MKhiriev/go-rest-lite/models"
)

// FallbackAction replaces the JSON envelope the server writes for one
// status code. Exactly one of RenderFile and Render applies, the last one
// called. The response code defaults to 200 and is changed with With.
type FallbackAction struct {
	server *Server

	file       string
	content    string
	hasContent bool
	returnCode int
}

// On returns the fallback for code, replacing any earlier one. The server
// consults it when it ends a request with code on its own: 404 for unknown
// paths, 401 for failed guards, 500 for relay errors and handler panics.
func (s *Server) On(code int) *FallbackAction {
	s.mustBeOpen("On")

	fa := &FallbackAction{server: s, returnCode: http.StatusOK}
	s.fallbacks[code] = fa
	return fa
}

// RenderFile answers with the file at path.
func (a *FallbackAction) RenderFile(path string) *FallbackAction {
	a.server.mustBeOpen("FallbackAction.RenderFile")
	a.file = path
	a.content, a.hasContent = "", false
	return a
}

// Render answers with content as text/html.
func (a *FallbackAction) Render(content string) *FallbackAction {
	a.server.mustBeOpen("FallbackAction.Render")
	a.content, a.hasContent = content, true
	a.file = ""
	return a
}

// With sets the status code of the answer.
func (a *FallbackAction) With(code int) *FallbackAction {
	a.server.mustBeOpen("FallbackAction.With")
	a.returnCode = code
	return a
}

func (a *FallbackAction) configured() bool {
	return a.file != "" || a.hasContent
}

// endResolve ends a request the server answers itself, through the fallback
// for code when one is configured.
func (s *Server) endResolve(res *Response, code int, message string) {
	if fa, ok := s.fallbacks[code]; ok && fa.configured() {
		if fa.file != "" {
			res.RenderFile(fa.returnCode, fa.file)
		} else {
			res.Render(fa.returnCode, fa.content, "")
		}
		return
	}

	if _, err := utils.WriteJSON(res, models.NewErrorEnvelope(code, message), code); err != nil {
		res.logger.Error().Err(err).Int("status", code).Msg("envelope write failed")
	}
}
