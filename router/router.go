package router

import (
	"github.com/indigo-web/tinyhttp/http"
)

// Router decides which response a request gets. It must always return a response, as
// there's no other way to answer the client.
type Router interface {
	OnRequest(request *http.Request) *http.Response
}

// Handler is an adapter allowing ordinary functions to be used as a Router.
type Handler func(request *http.Request) *http.Response

func (h Handler) OnRequest(request *http.Request) *http.Response {
	return h(request)
}
