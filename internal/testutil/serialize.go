package testutil

import (
	"github.com/indigo-web/tinyhttp/http"
)

// SerializeRequest renders the request back into its wire form. The body is appended
// as is, so it must be in-memory; Content-Length isn't derived and must be among the
// headers if the body isn't empty.
func SerializeRequest(request *http.Request) string {
	var buff []byte

	buff = append(buff, request.Method.String()...)
	buff = space(buff)
	buff = append(buff, request.Target...)
	buff = space(buff)
	buff = append(buff, request.Version...)
	buff = crlf(buff)

	for name, value := range request.Headers.Iter() {
		buff = header(buff, name, value)
	}

	buff = crlf(buff)
	if body, ok := request.Body.(http.Bytes); ok {
		buff = append(buff, body...)
	}

	return string(buff)
}

func space(b []byte) []byte {
	return append(b, ' ')
}

func crlf(b []byte) []byte {
	return append(b, '\r', '\n')
}

func header(b []byte, name, value []byte) []byte {
	b = append(b, name...)
	b = colonsp(b)
	b = append(b, value...)

	return crlf(b)
}

func colonsp(b []byte) []byte {
	return append(b, ':', ' ')
}
