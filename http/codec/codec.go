package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/coding"
	"github.com/indigo-web/tinyhttp/http/headers"
)

// ErrUnsupported is returned when a compressor is asked for an encoding it can't apply.
var ErrUnsupported = errors.New("encoding is not supported")

// Compressor transforms bodies into their encoded form.
type Compressor interface {
	coding.Support
	// Compress consumes the body and returns its encoded copy. The context bounds the
	// lifetime of any work spawned on the body's behalf.
	Compress(ctx context.Context, body http.Body, enc coding.Encoding) (http.Body, error)
}

// Error is a failure of compressing a body. Its text is exposed to the client as is, as
// the body of the 500 Internal Server Error response.
type Error struct {
	// Program is the name of the codec, either an executable or an in-process one.
	Program string
	// Stderr is whatever the program wrote into its standard error output.
	Stderr []byte
	Err    error
}

func (e *Error) Error() string {
	msg := e.Program + ": " + e.Err.Error()
	if stderr := bytes.TrimSpace(e.Stderr); len(stderr) > 0 {
		msg += ": " + string(stderr)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func unsupported(enc coding.Encoding) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, enc)
}

// Encode applies the content-coding declared by the response's Content-Encoding header.
// Responses with no such header or with an encoding the compressor doesn't support are
// returned untouched. On success, the body is replaced and Content-Length is updated,
// while Content-Encoding is kept. On failure, the returned response is a 500 Internal
// Server Error carrying the error text, and the error is returned along for logging.
// The uncompressed body is never sent in this case.
func Encode(ctx context.Context, c Compressor, resp *http.Response) (*http.Response, error) {
	token, found := resp.Headers.Get(headers.ContentEncoding)
	if !found {
		return resp, nil
	}

	enc, ok := coding.Parse(token)
	if !ok || !c.Supported().Has(enc) {
		return resp, nil
	}

	body, err := c.Compress(ctx, resp.Body, enc)
	if err != nil {
		return http.NewBuilder(resp.Version).Error(err), err
	}

	return &http.Response{
		Version: resp.Version,
		Code:    resp.Code,
		Headers: resp.Headers.Assoc(headers.ContentLength, strconv.FormatUint(body.Len(), 10)),
		Body:    body,
	}, nil
}
