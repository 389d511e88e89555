package webfake

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// Context is a fake HTTP context: a request and a response sharing one cookie
// collection, plus an in-memory session.
type Context struct {
	Request  *Request
	Response *Response
	Session  *Session
}

// NewContext builds a context around an httptest request.
func NewContext(method, target string, body io.Reader) *Context {
	return FromRequest(httptest.NewRequest(method, target, body))
}

// FromRequest builds a context around r. Cookies on r seed the shared
// collection.
func FromRequest(r *http.Request) *Context {
	cookies := newCookies()
	return &Context{
		Request:  newRequest(r, cookies),
		Response: newResponse(cookies),
		Session:  newSession(),
	}
}

// Authenticate marks the request as coming from a signed-in user.
func (c *Context) Authenticate() { c.Request.authenticated = true }

// WithRouteParam sets a chi URL parameter on the request.
func (c *Context) WithRouteParam(key, value string) *Context {
	raw := c.Request.raw
	rctx, ok := raw.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
		raw = raw.WithContext(context.WithValue(raw.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	c.Request.raw = raw
	return c
}

// Dispatch routes the request through a chi router holding h under pattern,
// so URL parameters in pattern are parsed the way the real router would.
// Cookies h sets on the writer end up in the shared collection.
func (c *Context) Dispatch(pattern string, h http.HandlerFunc) {
	router := chi.NewRouter()
	router.MethodFunc(c.Request.Method(), pattern, func(w http.ResponseWriter, r *http.Request) {
		c.Request.raw = r
		h(w, r)
	})
	router.ServeHTTP(c.Response.Writer(), c.Request.Raw())
	c.Response.syncCookies()
}
