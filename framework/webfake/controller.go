package webfake

import (
	"net/http"

	"github.com/km-arc/magicmock/framework/resolver"
)

// Contextual is implemented by controllers that accept a fake context. Embed
// Controller to get it.
type Contextual interface {
	SetContext(c *Context)
}

// Controller gives an embedding controller access to its context.
//
//	type SampleController struct {
//	    webfake.Controller
//	    service SomethingService
//	}
type Controller struct {
	ctx *Context
}

func (c *Controller) SetContext(ctx *Context) { c.ctx = ctx }

func (c *Controller) Context() *Context   { return c.ctx }
func (c *Controller) Request() *Request   { return c.ctx.Request }
func (c *Controller) Response() *Response { return c.ctx.Response }
func (c *Controller) Session() *Session   { return c.ctx.Session }

// Resolve resolves the controller T and attaches a fresh GET / context.
func Resolve[T Contextual](r *resolver.Resolver) (T, error) {
	return ResolveWith[T](r, NewContext(http.MethodGet, "/", nil))
}

// ResolveWith resolves the controller T and attaches ctx. The context and its
// parts are bound in r first, so constructors asking for *Context, *Request,
// *Response or *Session receive them.
func ResolveWith[T Contextual](r *resolver.Resolver, ctx *Context) (T, error) {
	resolver.BindInstance(r, ctx)
	resolver.BindInstance(r, ctx.Request)
	resolver.BindInstance(r, ctx.Response)
	resolver.BindInstance(r, ctx.Session)

	c, err := resolver.Resolve[T](r)
	if err != nil {
		var zero T
		return zero, err
	}
	c.SetContext(ctx)
	return c, nil
}
