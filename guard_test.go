package restlite

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deny(*Request) bool  { return false }
func allow(*Request) bool { return true }

func routedServer(t *testing.T, paths ...string) (*Server, *int) {
	t.Helper()
	s := newTestServer(t, Config{})
	calls := new(int)
	for _, p := range paths {
		c, err := s.At(p)
		require.NoError(t, err)
		c.Get(func(req *Request, res *Response, _ url.Values) {
			*calls++
			res.OK(req.Route)
		}).Post(func(req *Request, res *Response, _ url.Values) {
			*calls++
			res.OK(req.JSON)
		}, allow)
	}
	return s, calls
}

func TestGuard_Redirect(t *testing.T) {
	s, calls := routedServer(t, "/account")
	require.NoError(t, s.SetGuard(deny, "/account", RedirectTo("/login")))

	rr := serve(s, http.MethodGet, "/account", nil, nil)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.Empty(t, rr.Body.String())
	assert.Zero(t, *calls)
}

func TestGuard_RenderFile(t *testing.T) {
	page := filepath.Join(t.TempDir(), "denied.html")
	require.NoError(t, os.WriteFile(page, []byte("<h1>go away</h1>"), 0o600))

	s, calls := routedServer(t, "/account")
	require.NoError(t, s.SetGuard(deny, "/account", RenderFile(page)))

	rr := serve(s, http.MethodGet, "/account", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "<h1>go away</h1>", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Zero(t, *calls)
}

func TestGuard_RenderMissingFileFallsBackToEnvelope(t *testing.T) {
	s, calls := routedServer(t, "/account")
	require.NoError(t, s.SetGuard(deny, "/account", RenderFile(filepath.Join(t.TempDir(), "nope.html"))))

	rr := serve(s, http.MethodGet, "/account", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, http.StatusUnauthorized, env.Error)
	assert.Equal(t, "Not Authenticated", env.Message)
	assert.Zero(t, *calls)
}

func TestGuard_NoFallback(t *testing.T) {
	s, calls := routedServer(t, "/account")
	require.NoError(t, s.SetGuard(deny, "/account", NoFallback()))

	rr := serve(s, http.MethodGet, "/account", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "Not Authenticated", decodeEnvelope(t, rr).Message)
	assert.Zero(t, *calls)
}

func TestGuard_AllPredicatesRunInOrder(t *testing.T) {
	s, calls := routedServer(t, "/account")

	var order []string
	record := func(name string, result bool) Predicate {
		return func(*Request) bool {
			order = append(order, name)
			return result
		}
	}
	require.NoError(t, s.SetGuard(record("first", true), "/account", NoFallback()))
	require.NoError(t, s.SetGuard(record("second", true), "/account", NoFallback()))

	rr := serve(s, http.MethodGet, "/account", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, *calls)
}

func TestGuard_FirstFailureStopsTheChain(t *testing.T) {
	s, calls := routedServer(t, "/account")

	var later bool
	require.NoError(t, s.SetGuard(deny, "*", RedirectTo("/first")))
	require.NoError(t, s.SetGuard(func(*Request) bool {
		later = true
		return false
	}, "*", RedirectTo("/second")))

	rr := serve(s, http.MethodGet, "/account", nil, nil)
	assert.Equal(t, "/first", rr.Header().Get("Location"))
	assert.False(t, later)
	assert.Zero(t, *calls)
}

func TestGuard_GlobalPaths(t *testing.T) {
	for _, path := range []string{"*", "", "/*"} {
		t.Run("path "+path, func(t *testing.T) {
			s, calls := routedServer(t, "/", "/a", "/a/b/c", "/users/:id")
			require.NoError(t, s.SetGuard(deny, path, NoFallback()))

			for _, target := range []string{"/", "/a", "/a/b/c", "/users/7"} {
				assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, target, nil, nil).Code, target)
			}
			assert.Zero(t, *calls)
		})
	}
}

func TestGuard_EntriesApplyInRegistrationOrder(t *testing.T) {
	s, calls := routedServer(t, "/admin/public", "/admin/secret")
	require.NoError(t, s.SetGuard(deny, "/admin/*", NoFallback()))
	require.NoError(t, s.SetGuard(allow, "/admin/public", NoFallback()))

	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/admin/public", nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/admin/secret", nil, nil).Code)
	assert.Zero(t, *calls)

	s, calls = routedServer(t, "/admin/public", "/admin/secret")
	require.NoError(t, s.SetGuard(allow, "/admin/public", NoFallback()))
	require.NoError(t, s.SetGuard(deny, "/admin/*", NoFallback()))

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/admin/public", nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/admin/secret", nil, nil).Code)
	assert.Equal(t, 1, *calls)
}

func TestGuard_GlobalEntryBeatsLaterCaptureEntry(t *testing.T) {
	s, calls := routedServer(t, "/users/:id")
	require.NoError(t, s.SetGuard(allow, "*", NoFallback()))
	require.NoError(t, s.SetGuard(deny, "/users/:id", NoFallback()))

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/users/7", nil, nil).Code)
	assert.Equal(t, 1, *calls)
}

func TestGuard_PrefixEntryCoversDeeperRoutes(t *testing.T) {
	s, _ := routedServer(t, "/api/users/:id", "/public")
	require.NoError(t, s.SetGuard(deny, "/api/*", NoFallback()))

	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/api/users/1", nil, nil).Code)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/public", nil, nil).Code)
}

func TestGuard_FirstRegisteredWildcardEntryWins(t *testing.T) {
	s, _ := routedServer(t, "/api/users")
	require.NoError(t, s.SetGuard(deny, "/*/users", RedirectTo("/by-resource")))
	require.NoError(t, s.SetGuard(deny, "/api/*", RedirectTo("/by-area")))

	rr := serve(s, http.MethodGet, "/api/users", nil, nil)
	assert.Equal(t, "/by-resource", rr.Header().Get("Location"))

	s, _ = routedServer(t, "/api/users")
	require.NoError(t, s.SetGuard(deny, "/api/*", RedirectTo("/by-area")))
	require.NoError(t, s.SetGuard(deny, "/*/users", RedirectTo("/by-resource")))

	rr = serve(s, http.MethodGet, "/api/users", nil, nil)
	assert.Equal(t, "/by-area", rr.Header().Get("Location"))
}

func TestGuard_OnlyOneEntryApplies(t *testing.T) {
	s, calls := routedServer(t, "/api/users")
	require.NoError(t, s.SetGuard(allow, "/api/*", NoFallback()))
	require.NoError(t, s.SetGuard(deny, "*", NoFallback()))

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/api/users", nil, nil).Code)
	assert.Equal(t, 1, *calls)
}

func TestGuard_SeesCapturesAndStoresValues(t *testing.T) {
	s := newTestServer(t, Config{})
	c, err := s.At("/users/:id")
	require.NoError(t, err)
	c.Get(func(req *Request, res *Response, _ url.Values) {
		owner, _ := req.Value("owner")
		res.OK(owner)
	})
	require.NoError(t, s.SetGuard(func(req *Request) bool {
		req.Set("owner", req.Param("id"))
		return req.Param("id") != "root"
	}, "/users/:id", NoFallback()))

	rr := serve(s, http.MethodGet, "/users/alice", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `"alice"`, rr.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/users/root", nil, nil).Code)
}

func TestSetGuard_NilPredicate(t *testing.T) {
	s := newTestServer(t, Config{})
	assert.ErrorIs(t, s.SetGuard(nil, "*", NoFallback()), ErrNilPredicate)
	assert.ErrorIs(t, s.SetMethodGuard(nil), ErrNilPredicate)
}

func TestWhitelist_BypassesGuards(t *testing.T) {
	s, calls := routedServer(t, "/login", "/users/:id", "/private")
	require.NoError(t, s.SetGuard(deny, "*", NoFallback()))
	require.NoError(t, s.SetWhitelists([]string{"/login", "/users/:name"}))

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/login", nil, nil).Code)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/users/5", nil, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(s, http.MethodGet, "/private", nil, nil).Code)
	assert.Equal(t, 2, *calls)
}

func TestWhitelist_StillRunsMethodGuards(t *testing.T) {
	s := newTestServer(t, Config{})
	c, err := s.At("/login")
	require.NoError(t, err)

	var handled bool
	c.Post(func(_ *Request, res *Response, _ url.Values) {
		handled = true
		res.OK(nil)
	}, deny)
	require.NoError(t, s.SetWhitelist("/login"))

	rr := serve(s, http.MethodPost, "/login", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Permission Denied", decodeEnvelope(t, rr).Message)
	assert.False(t, handled)
}

func TestMethodGuard_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		global     []bool
		permission Predicate
		wantCode   int
		wantGlobal int
	}{
		{name: "no permission skips method guards", global: []bool{false}, permission: nil, wantCode: http.StatusOK, wantGlobal: 0},
		{name: "all pass", global: []bool{true, true}, permission: allow, wantCode: http.StatusOK, wantGlobal: 2},
		{name: "global fails first", global: []bool{false, true}, permission: allow, wantCode: http.StatusUnauthorized, wantGlobal: 1},
		{name: "route permission fails", global: []bool{true}, permission: deny, wantCode: http.StatusUnauthorized, wantGlobal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{})
			c, err := s.At("/thing")
			require.NoError(t, err)

			var handled bool
			h := func(_ *Request, res *Response, _ url.Values) {
				handled = true
				res.OK(nil)
			}
			if tt.permission != nil {
				c.Put(h, tt.permission)
			} else {
				c.Put(h)
			}

			var globalCalls int
			for _, result := range tt.global {
				require.NoError(t, s.SetMethodGuard(func(*Request) bool {
					globalCalls++
					return result
				}))
			}

			rr := serve(s, http.MethodPut, "/thing", nil, nil)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantGlobal, globalCalls)
			assert.Equal(t, tt.wantCode == http.StatusOK, handled)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Equal(t, "Permission Denied", decodeEnvelope(t, rr).Message)
			}
		})
	}
}

func TestMethodGuard_RunsAfterBodyParse(t *testing.T) {
	s := newTestServer(t, Config{})
	c, err := s.At("/orders")
	require.NoError(t, err)
	c.Post(okHandler, func(req *Request) bool {
		return req.JSON["role"] == "admin"
	})

	rr := serve(s, http.MethodPost, "/orders", stringsReader(`{"role":"admin"}`), jsonHeader)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(s, http.MethodPost, "/orders", stringsReader(`{"role":"guest"}`), jsonHeader)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
