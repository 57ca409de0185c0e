package status

import "strconv"

type Code uint16

// Codes the server is able to respond with. Each of them has a fixed reason phrase,
// see Text.
const (
	OK      Code = 200 // RFC 9110, 15.3.1
	Created Code = 201 // RFC 9110, 15.3.2

	BadRequest Code = 400 // RFC 9110, 15.5.1
	NotFound   Code = 404 // RFC 9110, 15.5.5

	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

// KnownCodes lists every code Text is able to render.
var KnownCodes = []Code{OK, Created, BadRequest, NotFound, InternalServerError}

// Text returns the reason phrase of the code. Responding with a code which isn't
// listed in KnownCodes is a bug, therefore Text panics on it.
func Text(code Code) string {
	switch code {
	case OK:
		return "OK"
	case Created:
		return "Created"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	default:
		panic("BUG: no reason phrase for status code " + strconv.Itoa(int(code)))
	}
}

// AppendCode appends the three-digit representation of the code.
func AppendCode(b []byte, code Code) []byte {
	return strconv.AppendUint(b, uint64(code), 10)
}

func (c Code) String() string {
	return strconv.Itoa(int(c)) + " " + Text(c)
}
