package router

import (
	"strings"

	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/method"
	"github.com/indigo-web/tinyhttp/http/status"
	"github.com/indigo-web/utils/uf"
)

var _ Router = new(Mux)

type route struct {
	// Unknown method matches any.
	method  method.Method
	path    string
	prefix  bool
	handler Handler
}

// Mux matches raw request targets against registered paths in the order of registration.
// Requests matching no route are passed to the fallback, which responds 404 Not Found
// unless overridden.
type Mux struct {
	routes   []route
	fallback Handler
}

func New() *Mux {
	return &Mux{
		fallback: func(request *http.Request) *http.Response {
			return http.Respond(request).Code(status.NotFound).Build()
		},
	}
}

// Route registers a handler for the exact path. Passing method.Unknown matches requests of
// any method.
func (m *Mux) Route(mt method.Method, path string, handler Handler) *Mux {
	m.routes = append(m.routes, route{method: mt, path: path, handler: handler})
	return m
}

// Prefix registers a handler for every path starting with the prefix. The remainder of
// the path can be obtained via Tail.
func (m *Mux) Prefix(mt method.Method, prefix string, handler Handler) *Mux {
	m.routes = append(m.routes, route{method: mt, path: prefix, prefix: true, handler: handler})
	return m
}

// NotFound overrides the fallback handler.
func (m *Mux) NotFound(handler Handler) *Mux {
	m.fallback = handler
	return m
}

func (m *Mux) OnRequest(request *http.Request) *http.Response {
	target := uf.B2S(request.Target)

	for _, r := range m.routes {
		if r.method != method.Unknown && r.method != request.Method {
			continue
		}

		if target == r.path || (r.prefix && strings.HasPrefix(target, r.path)) {
			return r.handler(request)
		}
	}

	return m.fallback(request)
}

// Tail returns the part of the request target following the prefix. If the target doesn't
// start with the prefix, an empty string is returned.
func Tail(request *http.Request, prefix string) string {
	tail, found := strings.CutPrefix(string(request.Target), prefix)
	if !found {
		return ""
	}

	return tail
}
