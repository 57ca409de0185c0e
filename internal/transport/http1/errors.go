package http1

import (
	"errors"
)

var (
	// ErrTooLarge is returned when the request line and headers don't fit into the
	// configured space.
	ErrTooLarge = errors.New("request line and headers are too large")
	// ErrBodyTooLarge is returned when Content-Length exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body is too large")
	// ErrInvalidHeader is returned for a header line missing the colon.
	ErrInvalidHeader = errors.New("invalid header")
)

// Section names the part of a message an error has occurred in.
type Section string

const (
	RequestLine Section = "request line"
	Headers     Section = "headers"
	Body        Section = "body"
	Flush       Section = "flush"
)

// ParseError is a failure of reading a request. The connection it occurred on can't be
// used anymore, as the stream position is unknown. Underlying I/O errors are preserved,
// so errors.Is(err, io.EOF) holds for a connection closed by the client.
type ParseError struct {
	Section Section
	Err     error
}

func (p *ParseError) Error() string {
	return string(p.Section) + ": " + p.Err.Error()
}

func (p *ParseError) Unwrap() error {
	return p.Err
}

// IOError is a failure of writing a response. The response might have been sent partially,
// so the connection must be abandoned.
type IOError struct {
	Section Section
	Err     error
}

func (i *IOError) Error() string {
	return string(i.Section) + ": " + i.Err.Error()
}

func (i *IOError) Unwrap() error {
	return i.Err
}

func parseError(section Section, err error) error {
	return &ParseError{Section: section, Err: err}
}
