package testutil

import (
	"errors"
	"strconv"
	"strings"

	"github.com/indigo-web/tinyhttp/http/headers"
)

var (
	ErrMalformed = errors.New("malformed response")
	ErrTruncated = errors.New("body is shorter than the Content-Length")
)

// Response is a serialized response split back into its parts.
type Response struct {
	Version string
	Code    int
	Reason  string
	Headers headers.Headers
	Body    string
}

// ParseResponse parses exactly one response off the data, returning the rest of it. The
// body is delimited by the Content-Length header, which must be present.
func ParseResponse(data string) (resp Response, rest string, err error) {
	head, payload, found := strings.Cut(data, "\r\n\r\n")
	if !found {
		return resp, data, ErrMalformed
	}

	statusLine, fields, _ := strings.Cut(head, "\r\n")
	version, statusLine, _ := strings.Cut(statusLine, " ")
	code, reason, _ := strings.Cut(statusLine, " ")
	resp.Version, resp.Reason = version, reason
	if resp.Code, err = strconv.Atoi(code); err != nil {
		return resp, data, ErrMalformed
	}

	builder := headers.NewBuilder(4)
	for _, line := range strings.Split(fields, "\r\n") {
		if len(line) == 0 {
			continue
		}

		name, value, found := strings.Cut(line, ": ")
		if !found {
			return resp, data, ErrMalformed
		}

		builder.Add([]byte(name), []byte(value))
	}

	resp.Headers = builder.Build()
	length, ok := headers.ReadUint(resp.Headers, headers.ContentLength)
	if !ok {
		return resp, data, ErrMalformed
	}

	if uint64(len(payload)) < length {
		return resp, data, ErrTruncated
	}

	resp.Body = payload[:length]

	return resp, payload[length:], nil
}
