// Package httprouter adapts julienschmidt/httprouter to the router interface.
package httprouter

import (
	"net/http"
	"strings"

	jshttprouter "github.com/julienschmidt/httprouter"

	"github.com/hushbox/hushauth/router"
)

type Router struct {
	rt *jshttprouter.Router
}

var _ router.Router = (*Router)(nil)

func New() *Router {
	rt := jshttprouter.New()
	rt.HandleMethodNotAllowed = true
	return &Router{rt: rt}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

// Handle registers a "METHOD /path" endpoint string. A bare path registers
// under GET.
func (r *Router) Handle(endpoint string, handler http.Handler) {
	method, path := splitEndpoint(endpoint)
	r.rt.Handler(method, path, handler)
}

func (r *Router) Register(routes ...*router.Route) {
	for _, rt := range routes {
		r.Handle(rt.Endpoint(), rt.Handler())
	}
}

func splitEndpoint(endpoint string) (method, path string) {
	if i := strings.Index(endpoint, " "); i >= 0 {
		return endpoint[:i], endpoint[i+1:]
	}
	return http.MethodGet, endpoint
}
