package transport

import (
	"github.com/indigo-web/tinyhttp/http"
)

// RequestReader reads requests off a connection, one at a time.
type RequestReader interface {
	Read() (*http.Request, error)
}

// ResponseWriter serializes responses into a connection.
type ResponseWriter interface {
	Write(response *http.Response) error
}

// Transport is a pair of a reader and a writer belonging to the same protocol version.
type Transport interface {
	RequestReader
	ResponseWriter
}
