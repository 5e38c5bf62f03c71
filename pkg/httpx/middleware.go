package httpx

import "net/http"

// Middleware decorates an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with mws so that the first middleware listed is the
// outermost one and runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		h = mws[i](h)
	}
	return h
}

// ResourceIDFunc pulls the identifier of the guarded resource out of a
// request. It returns "" when the request does not carry one.
type ResourceIDFunc func(*http.Request) string

// PathValue extracts a named wildcard from the matched ServeMux pattern,
// e.g. PathValue("projectId") for "/api/project/{projectId}".
func PathValue(name string) ResourceIDFunc {
	return func(r *http.Request) string {
		return r.PathValue(name)
	}
}

// QueryValue extracts a query string parameter.
func QueryValue(name string) ResourceIDFunc {
	return func(r *http.Request) string {
		return r.URL.Query().Get(name)
	}
}
