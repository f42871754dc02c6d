package router

import "net/http"

type Chain struct {
	handler     http.Handler
	middlewares []func(http.Handler) http.Handler
}

// NewChain creates a new Chain instance with the base handler and initialized
// middlewares slice.
func NewChain(h http.Handler) *Chain {
	if h == nil {
		panic("chain handler cannot be nil")
	}
	return &Chain{
		handler:     h,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

// WithMiddleware adds one or more middlewares to the chain.
// Middlewares execute in the order they are defined, from left to right:
//
//	.WithMiddleware(mw1, mw2, mw3)
//
// runs mw1 first, then mw2, then mw3, then the handler. This follows the same
// semantics as middleware chaining packages like Alice
// (github.com/justinas/alice), matching the natural reading order of the code.
func (c *Chain) WithMiddleware(middlewares ...func(http.Handler) http.Handler) *Chain {
	for _, mw := range middlewares {
		c.middlewares = append([]func(http.Handler) http.Handler{mw}, c.middlewares...)
	}
	return c
}

// WithMiddlewareChain prepends a chain of middlewares (added in given order).
func (c *Chain) WithMiddlewareChain(middlewares []func(http.Handler) http.Handler) *Chain {
	return c.WithMiddleware(middlewares...)
}

// Handler returns the final handler with all middlewares applied.
func (c *Chain) Handler() http.Handler {
	handler := c.handler
	for _, mw := range c.middlewares {
		handler = mw(handler)
	}
	return handler
}
