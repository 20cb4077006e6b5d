package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addEntry(t *testing.T, tbl *Table, path, target, swap string) *Entry {
	t.Helper()
	e, err := tbl.Add(path)
	require.NoError(t, err)
	require.NoError(t, e.SetTarget(target))
	e.Swap = swap
	return e
}

func TestTable_AddDuplicate(t *testing.T) {
	tbl := NewTable(MatchPrefix)

	_, err := tbl.Add("/api/*")
	require.NoError(t, err)

	_, err = tbl.Add("/API/*")
	require.ErrorIs(t, err, ErrDuplicatePath)
	assert.Equal(t, 1, tbl.Len())
}

func TestEntry_SetTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    string
		wantErr bool
	}{
		{name: "http", target: "http://localhost:2000", want: "http://localhost:2000"},
		{name: "trailing slash trimmed", target: "https://example.com/", want: "https://example.com"},
		{name: "base path kept", target: "http://example.com/base", want: "http://example.com/base"},
		{name: "no scheme", target: "localhost:2000", wantErr: true},
		{name: "ftp", target: "ftp://example.com", wantErr: true},
		{name: "no host", target: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{}
			err := e.SetTarget(tt.target)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTarget)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Target)
		})
	}
}

func TestTable_ResolvePrefix(t *testing.T) {
	tbl := NewTable(MatchPrefix)
	addEntry(t, tbl, "/api/*", "http://upstream", "")

	tests := []struct {
		path   string
		wantOK bool
	}{
		{path: "/api/users", wantOK: true},
		{path: "/API/Users", wantOK: true},
		{path: "/api", wantOK: true},
		{path: "/apiary", wantOK: false},
		{path: "/v1/api/users", wantOK: false},
		{path: "/", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, ok := tbl.Resolve(tt.path)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

// TestTable_ResolveSubstring checks the permissive mode, including the false
// positive on an unrelated path sharing the token.
func TestTable_ResolveSubstring(t *testing.T) {
	tbl := NewTable(MatchSubstring)
	addEntry(t, tbl, "/api/*", "http://upstream", "")

	_, ok := tbl.Resolve("/v1/api/users")
	assert.True(t, ok)

	_, ok = tbl.Resolve("/api")
	assert.False(t, ok)

	_, ok = tbl.Resolve("/public")
	assert.False(t, ok)
}

func TestTable_ResolveGlobalAndOrder(t *testing.T) {
	tbl := NewTable(MatchPrefix)
	first := addEntry(t, tbl, "/api/*", "http://one", "")
	second := addEntry(t, tbl, "*", "http://two", "")

	e, ok := tbl.Resolve("/api/x")
	require.True(t, ok)
	assert.Same(t, first, e)

	e, ok = tbl.Resolve("/anything")
	require.True(t, ok)
	assert.Same(t, second, e)
}

func TestTable_ResolveSkipsEntriesWithoutTarget(t *testing.T) {
	tbl := NewTable(MatchPrefix)
	_, err := tbl.Add("/api/*")
	require.NoError(t, err)

	_, ok := tbl.Resolve("/api/x")
	assert.False(t, ok)
}

func TestEntry_Rewrite(t *testing.T) {
	tests := []struct {
		name   string
		needle string
		swap   string
		uri    string
		want   string
	}{
		{name: "no swap", needle: "/a/", uri: "/a/x?q=1", want: "/a/x?q=1"},
		{name: "prefix swap", needle: "/api/", swap: "/v2/", uri: "/api/users?id=7", want: "/v2/users?id=7"},
		{name: "case insensitive needle", needle: "/api/", swap: "/v2/", uri: "/API/Users", want: "/v2/Users"},
		{name: "only first occurrence", needle: "/x/", swap: "/y/", uri: "/x/x/x", want: "/y/x/x"},
		{name: "bare prefix", needle: "/api/", swap: "/v2/", uri: "/api", want: "/v2"},
		{name: "bare prefix with query", needle: "/api/", swap: "/v2/", uri: "/API?x=1", want: "/v2?x=1"},
		{name: "bare prefix to root", needle: "/api/", swap: "/", uri: "/api?x=1", want: "/?x=1"},
		{name: "needle absent", needle: "/api/", swap: "/v2/", uri: "/apix", want: "/apix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{needle: tt.needle, Swap: tt.swap}
			assert.Equal(t, tt.want, e.Rewrite(tt.uri))
		})
	}
}

func TestTable_AddComputesNeedle(t *testing.T) {
	tbl := NewTable(MatchPrefix)

	e, err := tbl.Add("/Api/:version/*")
	require.NoError(t, err)
	assert.Equal(t, "/api/*/*", e.Key)
	assert.Equal(t, "/api/", e.Needle())

	e, err = tbl.Add("/health")
	require.NoError(t, err)
	assert.Equal(t, "/health", e.Needle())
}

func TestParseMatchMode(t *testing.T) {
	m, err := ParseMatchMode("")
	require.NoError(t, err)
	assert.Equal(t, MatchPrefix, m)

	m, err = ParseMatchMode("Substring")
	require.NoError(t, err)
	assert.Equal(t, MatchSubstring, m)

	_, err = ParseMatchMode("regex")
	require.ErrorIs(t, err, ErrUnknownMatchMode)
}
