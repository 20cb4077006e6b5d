package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-rest-lite/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(r.Method + " " + r.URL.Path))
	})
}

func TestNewHandler_StoresDependencies(t *testing.T) {
	log := logger.Nop()
	metrics := http.NotFoundHandler()
	h := NewHandler(echoPath(), "/metrics", metrics, log)

	require.NotNil(t, h)
	assert.Equal(t, "/metrics", h.metricsPath)
	assert.Equal(t, log, h.logger)
	assert.NotNil(t, h.dispatcher)
}

// ─────────────────────────────────────────────
// Init
// ─────────────────────────────────────────────

// TestInit_EverythingReachesDispatcher checks that chi does no routing of its
// own: every method and path, including the root, lands in the dispatcher.
func TestInit_EverythingReachesDispatcher(t *testing.T) {
	router := NewHandler(echoPath(), "", nil, logger.Nop()).Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/users/42"},
		{http.MethodPost, "/api/v1/items"},
		{http.MethodOptions, "/anything"},
		{http.MethodDelete, "/a/b/c/d"},
		{http.MethodPatch, "/Users//7/"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusAccepted, rr.Code)
			assert.Equal(t, tt.method+" "+tt.path, rr.Body.String())
		})
	}
}

func TestInit_MetricsEndpoint(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})
	router := NewHandler(echoPath(), "/metrics", metrics, logger.Nop()).Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "metrics", rr.Body.String())

	// other verbs on the metrics path still belong to the dispatcher
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "POST /metrics", rr.Body.String())
}

func TestInit_MetricsDisabled(t *testing.T) {
	router := NewHandler(echoPath(), "", nil, logger.Nop()).Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "GET /metrics", rr.Body.String())
}

func TestInit_TraceIDHeader(t *testing.T) {
	router := NewHandler(echoPath(), "", nil, logger.Nop()).Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(traceIDHeader, "abc")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "abc", rr.Header().Get(traceIDHeader))
}

func TestInit_RecoversPanics(t *testing.T) {
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	router := NewHandler(boom, "", nil, logger.Nop()).Init()

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
