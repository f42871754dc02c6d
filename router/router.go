package router

import "net/http"

// Router registers endpoint strings of the form "METHOD /path" against
// handlers. A missing method defaults to GET.
type Router interface {
	http.Handler

	Handle(endpoint string, handler http.Handler)
	Register(routes ...*Route)
}
