package http

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/http/mime"
	"github.com/indigo-web/tinyhttp/http/status"
)

// why 4? That's exactly how many headers the engine sets by itself.
const preallocRespHeaders = 4

// Response is a finished response, ready to be serialized. Its Content-Length header
// always matches the length of the body.
type Response struct {
	// Version is echoed from the request.
	Version []byte
	Code    status.Code
	Headers headers.Headers
	Body    Body
}

// Builder accumulates the status and headers of a response until a body is set. The
// Content-Length header is computed when the body is finalized.
type Builder struct {
	version []byte
	code    status.Code
	headers *headers.Builder
}

// NewBuilder returns a builder for the protocol version with the code set to 200 OK.
func NewBuilder(version []byte) *Builder {
	return &Builder{
		version: version,
		code:    status.OK,
		headers: headers.NewBuilder(preallocRespHeaders),
	}
}

// Respond returns a builder for the response to the request.
func Respond(request *Request) *Builder {
	return NewBuilder(request.Version)
}

// Code sets the response code. Only codes from status.KnownCodes can be rendered.
func (b *Builder) Code(code status.Code) *Builder {
	b.code = code
	return b
}

// Header sets the header, overriding the previous value of it if any.
func (b *Builder) Header(name, value string) *Builder {
	b.headers.Set(name, value)
	return b
}

// ContentEncoding declares the coding the body is going to be compressed with. An empty
// token is ignored, so a negotiation result can be passed as is.
func (b *Builder) ContentEncoding(token string) *Builder {
	if len(token) == 0 {
		return b
	}

	return b.Header(headers.ContentEncoding, token)
}

// Body finalizes the response with the passed body.
func (b *Builder) Body(body Body) *Response {
	if body == nil {
		body = Empty()
	}

	b.headers.Set(headers.ContentLength, strconv.FormatUint(body.Len(), 10))

	return &Response{
		Version: b.version,
		Code:    b.code,
		Headers: b.headers.Build(),
		Body:    body,
	}
}

// Build finalizes the response with no body and no Content-Type.
func (b *Builder) Build() *Response {
	return b.Body(Empty())
}

// Plain finalizes the response with a text/plain body. The slice isn't copied.
func (b *Builder) Plain(body []byte) *Response {
	return b.
		Header(headers.ContentType, mime.Plain).
		Body(Bytes(body))
}

// String is Plain for strings.
func (b *Builder) String(body string) *Response {
	return b.Plain([]byte(body))
}

// Empty finalizes the response with an empty text/plain body.
func (b *Builder) Empty() *Response {
	return b.Plain(nil)
}

// File finalizes the response with the file at path as an application/octet-stream body.
// Files which don't exist, aren't accessible or aren't regular files result in 404 Not
// Found, any other failure in 500 Internal Server Error. Both have an empty body.
func (b *Builder) File(path string) *Response {
	// opening a fifo blocks until there's a writer, so filter such files out in advance
	stat, err := os.Stat(path)
	if err == nil && !stat.Mode().IsRegular() {
		return b.Code(status.NotFound).Empty()
	}

	file, err := OpenFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return b.Code(status.NotFound).Empty()
	default:
		return b.Code(status.InternalServerError).Empty()
	}

	// the path might have been replaced in between
	if !file.IsRegular() {
		_ = file.Close()
		return b.Code(status.NotFound).Empty()
	}

	return b.
		Header(headers.ContentType, mime.OctetStream).
		Body(file)
}

// Error finalizes a 500 Internal Server Error response with the error text as a body.
func (b *Builder) Error(err error) *Response {
	return b.
		Code(status.InternalServerError).
		String(err.Error())
}
