// Package docs renders Markdown documentation from a route table snapshot.
//
// The renderer only reads [models.RouteInfo] and [models.ForwardInfo]
// values; optional hand-written metadata decorates the entries it names and
// every other route is rendered undecorated.
package docs

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-rest-lite/models"
	"github.com/samber/lo"
)

// Meta decorates a route in the output.
type Meta struct {
	Summary     string `json:"summary" yaml:"summary"`
	Description string `json:"description" yaml:"description"`
}

// Render writes the documentation of routes and forwards to w. meta is
// keyed by route key ("/users/*") or template ("/users/:id"), the key
// taking precedence; it may be nil.
func Render(w io.Writer, title string, routes []models.RouteInfo, forwards []models.ForwardInfo, meta map[string]Meta) error {
	bw := bufio.NewWriter(w)

	if title == "" {
		title = "API"
	}
	fmt.Fprintf(bw, "# %s\n\n", title)

	fmt.Fprintln(bw, "## Routes")
	fmt.Fprintln(bw)
	if len(routes) == 0 {
		fmt.Fprintln(bw, "No routes registered.")
		fmt.Fprintln(bw)
	}
	for _, r := range routes {
		m, ok := lookup(meta, r)
		renderRoute(bw, r, m, ok)
	}

	if len(forwards) > 0 {
		fmt.Fprintln(bw, "## Forwards")
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "| path | target | swap |")
		fmt.Fprintln(bw, "|---|---|---|")
		for _, f := range forwards {
			fmt.Fprintf(bw, "| `%s` | %s | %s |\n", f.Key, orDash(f.Target), orDash(f.Swap))
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func lookup(meta map[string]Meta, r models.RouteInfo) (Meta, bool) {
	if m, ok := meta[r.Key]; ok {
		return m, true
	}
	m, ok := meta[r.Template]
	return m, ok
}

func renderRoute(w io.Writer, r models.RouteInfo, m Meta, hasMeta bool) {
	verbs := lo.Map(r.Methods, func(mi models.MethodInfo, _ int) string { return mi.Method })
	fmt.Fprintf(w, "### `%s` %s\n\n", r.Template, strings.Join(verbs, ", "))

	if hasMeta {
		if m.Summary != "" {
			fmt.Fprintf(w, "**%s**\n\n", m.Summary)
		}
		if m.Description != "" {
			fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(m.Description))
		}
	}

	if len(r.Params) > 0 {
		params := lo.Map(r.Params, func(p string, _ int) string { return "`" + p + "`" })
		fmt.Fprintf(w, "Parameters: %s\n\n", strings.Join(params, ", "))
	}
	if r.Whitelisted {
		fmt.Fprintln(w, "Guards: skipped (whitelisted)")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "| method | handler | permission |")
	fmt.Fprintln(w, "|---|---|---|")
	for _, mi := range r.Methods {
		fmt.Fprintf(w, "| %s | `%s` | %s |\n", mi.Method, shortName(mi.Handler), lo.Ternary(mi.Guarded, "required", "-"))
	}
	fmt.Fprintln(w)
}

// shortName trims the import path off a function name:
// "github.com/x/app/handlers.(*Users).Get-fm" becomes "handlers.(*Users).Get".
func shortName(fn string) string {
	if fn == "" {
		return "-"
	}
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		fn = fn[i+1:]
	}
	return strings.TrimSuffix(fn, "-fm")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
