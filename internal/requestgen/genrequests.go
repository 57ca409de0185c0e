// Package requestgen generates raw requests for tests and benchmarks.
package requestgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/tinyhttp/http/headers"
)

// Headers returns n headers, the last one of them being Host.
func Headers(n int) headers.Headers {
	hdrs := headers.NewBuilder(n)

	for i := range n - 1 {
		name := "some-random-header-name-nobody-cares-about" + strconv.Itoa(i)
		hdrs.Add([]byte(name), []byte(strings.Repeat("b", 100)))
	}

	return hdrs.Add([]byte("Host"), []byte("localhost")).Build()
}

func HeadersBlock(hdrs headers.Headers) (buff []byte) {
	for name, value := range hdrs.Iter() {
		buff = append(buff, name...)
		buff = append(buff, ": "...)
		buff = append(buff, value...)
		buff = append(buff, "\r\n"...)
	}

	return buff
}

// Generate returns a GET request to the target with the headers and no body.
func Generate(target string, hdrs headers.Headers) (request []byte) {
	request = append(request, "GET "+target+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// WithBody returns a POST request to the target carrying the body.
func WithBody(target string, body string) []byte {
	return []byte("POST " + target + " HTTP/1.1\r\n" +
		"Content-Length: " + strconv.Itoa(len(body)) + "\r\n" +
		"\r\n" + body)
}
