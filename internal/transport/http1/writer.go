package http1

import (
	"bufio"
	"io"

	"github.com/indigo-web/tinyhttp/config"
	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/status"
	"github.com/indigo-web/tinyhttp/internal/transport"
)

var _ transport.ResponseWriter = new(Writer)

// minimalFileBuffSize defines the minimal size of the file buffer. In case it's less
// it'll be set to this value.
const minimalFileBuffSize = 16

// Writer serializes responses. Everything is accumulated in a buffer which is flushed
// once the whole response is written, except file bodies, which are streamed in chunks
// no bigger than the file buffer.
type Writer struct {
	dst  *bufio.Writer
	buff []byte
	// fileBuff isn't allocated until needed in order to save memory in cases,
	// where no files are being sent
	fileBuff     []byte
	fileBuffSize int
}

func NewWriter(dst io.Writer, cfg *config.Config) *Writer {
	return &Writer{
		dst:          bufio.NewWriterSize(dst, cfg.NET.WriteBufferSize),
		fileBuffSize: max(cfg.NET.FileBufferSize, minimalFileBuffSize),
	}
}

// Write serializes the response and consumes its body. Every returned error is an *IOError.
func (w *Writer) Write(response *http.Response) error {
	w.buff = w.renderHeaders(w.renderStatusLine(w.buff[:0], response), response)

	if _, err := w.dst.Write(w.buff); err != nil {
		return &IOError{Section: Headers, Err: err}
	}

	if err := w.writeBody(response.Body); err != nil {
		return &IOError{Section: Body, Err: err}
	}

	if err := w.dst.Flush(); err != nil {
		return &IOError{Section: Flush, Err: err}
	}

	return nil
}

func (w *Writer) renderStatusLine(buff []byte, response *http.Response) []byte {
	buff = append(buff, response.Version...)
	buff = append(buff, ' ')
	buff = status.AppendCode(buff, response.Code)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(response.Code)...)

	return append(buff, crlf...)
}

func (w *Writer) renderHeaders(buff []byte, response *http.Response) []byte {
	for name, value := range response.Headers.Iter() {
		buff = append(buff, name...)
		buff = append(buff, ':', ' ')
		buff = append(buff, value...)
		buff = append(buff, crlf...)
	}

	return append(buff, crlf...)
}

func (w *Writer) writeBody(body http.Body) error {
	switch b := body.(type) {
	case nil:
		return nil
	case *http.File:
		if w.fileBuff == nil {
			w.fileBuff = make([]byte, w.fileBuffSize)
		}

		_, err := http.Copy(w.dst, b, w.fileBuff)
		return err
	default:
		_, err := http.Copy(w.dst, b, nil)
		return err
	}
}
