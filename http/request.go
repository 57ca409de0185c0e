package http

import (
	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/http/method"
)

// Request represents HTTP request. It's immutable once read.
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Target is the raw request target, not percent-decoded.
	Target []byte
	// Version is the protocol token as it was sent by the client. It's echoed back
	// in the response.
	Version []byte
	// Headers holds non-normalized header pairs, even though lookup is case-insensitive.
	Headers headers.Headers
	// Body is always buffered, as there's nowhere to stream it to in advance.
	Body Body
}
