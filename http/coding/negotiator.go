package coding

import (
	"github.com/indigo-web/tinyhttp/http/headers"
)

// Support reports the encodings which can actually be applied to a body. Implementations
// are expected to compute the result once and return the same set afterwards.
type Support interface {
	Supported() Set
}

// Negotiator picks the content-coding of a response by intersecting the encodings accepted
// by the client with the supported ones.
type Negotiator struct {
	support Support
}

func NewNegotiator(support Support) Negotiator {
	return Negotiator{support: support}
}

// Negotiate returns the selected encoding, if any, for the request headers.
func (n Negotiator) Negotiate(h headers.Headers) (Encoding, bool) {
	value, found := h.Get(headers.AcceptEncoding)
	if !found {
		return 0, false
	}

	return Select(ParseAcceptEncoding(value), n.support.Supported())
}

// Token returns the token of the selected encoding or an empty string if nothing
// was selected, which is the form http.Builder.ContentEncoding accepts.
func (n Negotiator) Token(h headers.Headers) string {
	enc, ok := n.Negotiate(h)
	if !ok {
		return ""
	}

	return enc.Token()
}
