package http1

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/indigo-web/tinyhttp/config"
	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/http/method"
	"github.com/indigo-web/tinyhttp/internal/buffer"
	"github.com/indigo-web/tinyhttp/internal/strutil"
	"github.com/indigo-web/tinyhttp/internal/transport"
	"github.com/indigo-web/utils/uf"
)

var _ transport.RequestReader = new(Reader)

var crlf = []byte("\r\n")

// Reader reads HTTP/1.x requests. The request line and headers are sliced out of a single
// arena without copying. Bodies are buffered entirely, as long as Content-Length says.
//
// Reading the next request invalidates the request line and headers of the previous one.
type Reader struct {
	src      *bufio.Reader
	arena    *buffer.Buffer
	prealloc int
	maxBody  uint64
}

func NewReader(src io.Reader, cfg *config.Config) *Reader {
	return &Reader{
		src:      bufio.NewReaderSize(src, cfg.NET.ReadBufferSize),
		arena:    buffer.New(cfg.Headers.Space.Default, cfg.Headers.Space.Maximal),
		prealloc: cfg.Headers.Prealloc,
		maxBody:  cfg.Body.MaxSize,
	}
}

// Read reads the next request. Every returned error is a *ParseError.
func (r *Reader) Read() (*http.Request, error) {
	r.arena.Clear()

	request := new(http.Request)
	if err := r.readRequestLine(request); err != nil {
		return nil, parseError(RequestLine, err)
	}

	hdrs, err := r.readHeaders()
	if err != nil {
		return nil, parseError(Headers, err)
	}

	request.Headers = hdrs

	// invalid values are treated as absent ones, therefore as zero length
	length, _ := headers.ReadUint(hdrs, headers.ContentLength)
	if request.Body, err = r.readBody(length); err != nil {
		return nil, parseError(Body, err)
	}

	return request, nil
}

// readSegment reads the next CRLF-terminated line into the arena. The terminator is
// excluded from the segment, however counted in the returned number of consumed bytes.
// Bare LFs don't terminate a segment.
func (r *Reader) readSegment() (segment []byte, n int, err error) {
	for {
		chunk, err := r.src.ReadSlice('\n')
		n += len(chunk)

		if !r.arena.Append(chunk) {
			return nil, n, ErrTooLarge
		}

		switch err {
		case nil:
			if bytes.HasSuffix(r.arena.Preview(), crlf) {
				segment = r.arena.Finish()
				return segment[:len(segment)-len(crlf)], n, nil
			}
		case bufio.ErrBufferFull:
		case io.EOF:
			if n > 0 {
				err = io.ErrUnexpectedEOF
			}

			return nil, n, err
		default:
			return nil, n, err
		}
	}
}

func (r *Reader) readRequestLine(request *http.Request) error {
	line, _, err := r.readSegment()
	if err != nil {
		return err
	}

	tokens := strutil.Fields(line)
	if len(tokens) != 3 {
		return fmt.Errorf("want exactly 3 tokens, got %d", len(tokens))
	}

	request.Method = method.Parse(uf.B2S(tokens[0]))
	if request.Method == method.Unknown {
		return fmt.Errorf("unrecognized method: %q", tokens[0])
	}

	request.Target, request.Version = tokens[1], tokens[2]

	return nil
}

func (r *Reader) readHeaders() (headers.Headers, error) {
	builder := headers.NewBuilder(r.prealloc)

	for {
		line, _, err := r.readSegment()
		if err != nil {
			// the request line is already read, so the request is cut off anyway
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}

			return headers.Headers{}, err
		}

		if len(line) == 0 {
			return builder.Build(), nil
		}

		name, value, found := bytes.Cut(line, []byte(":"))
		if !found {
			return headers.Headers{}, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
		}

		builder.Add(name, strutil.LStripWS(value))
	}
}

func (r *Reader) readBody(length uint64) (http.Body, error) {
	if length == 0 {
		return http.Empty(), nil
	}

	if length > r.maxBody {
		return nil, fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r.src, body); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, err
	}

	return http.Bytes(body), nil
}
