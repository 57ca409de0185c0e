// Package routes holds the endpoints the server ships with.
package routes

import (
	"os"
	"path/filepath"

	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/http/method"
	"github.com/indigo-web/tinyhttp/http/status"
	"github.com/indigo-web/tinyhttp/router"
)

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

// New returns the router serving:
//
//	/            200 with no body
//	/user-agent  the User-Agent request header as a plain text
//	/echo/<msg>  <msg> as a plain text
//	/files/<f>   GET downloads, POST uploads the file <f> in dir
//
// Everything else is 404 Not Found.
func New(dir string) *router.Mux {
	files := files{dir: dir}

	return router.New().
		Route(method.Unknown, "/", root).
		Route(method.Unknown, "/user-agent", userAgent).
		Route(method.Unknown, "/user-agent/", userAgent).
		Prefix(method.Unknown, "/echo", echo).
		Prefix(method.GET, "/files", files.download).
		Prefix(method.POST, "/files", files.upload)
}

func root(request *http.Request) *http.Response {
	return http.Respond(request).Build()
}

func userAgent(request *http.Request) *http.Response {
	value, found := request.Headers.Get(headers.UserAgent)
	if !found {
		return http.Respond(request).Code(status.NotFound).Build()
	}

	return http.Respond(request).Plain(value)
}

func echo(request *http.Request) *http.Response {
	return http.Respond(request).String(router.Tail(request, echoPrefix))
}

type files struct {
	dir string
}

// resolve returns the path of the file within the directory. Names which are empty or
// would escape the directory are rejected.
func (f files) resolve(request *http.Request) (path string, ok bool) {
	name := router.Tail(request, filesPrefix)
	if !filepath.IsLocal(name) {
		return "", false
	}

	return filepath.Join(f.dir, name), true
}

func (f files) download(request *http.Request) *http.Response {
	path, ok := f.resolve(request)
	if !ok {
		return http.Respond(request).Code(status.NotFound).Build()
	}

	return http.Respond(request).File(path)
}

func (f files) upload(request *http.Request) *http.Response {
	path, ok := f.resolve(request)
	if !ok {
		return http.Respond(request).Code(status.BadRequest).Build()
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return http.Respond(request).Code(status.InternalServerError).Empty()
	}

	_, err = http.Copy(file, request.Body, nil)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return http.Respond(request).Code(status.InternalServerError).Empty()
	}

	return http.Respond(request).Code(status.Created).Build()
}
