package headers

// Names of the headers the engine interprets by itself.
const (
	AcceptEncoding  = "Accept-Encoding"
	ContentType     = "Content-Type"
	ContentLength   = "Content-Length"
	ContentEncoding = "Content-Encoding"
	UserAgent       = "User-Agent"
)
