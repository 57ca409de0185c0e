package http

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// ErrBodyConsumed is returned by readers of a file body which was already handed over
// to another consumer.
var ErrBodyConsumed = errors.New("body is already consumed")

// Body is the payload of a request or a response. It's either Bytes, which are fully
// buffered, or *File, which is backed by an open file. Consumers must distinguish the
// variants with a type switch, as their costs differ: see Copy for a reference.
//
// A body is consumed exactly once.
type Body interface {
	// Len returns the length of the payload without performing any I/O.
	Len() uint64
	body()
}

// Bytes is an in-memory body. It must not be modified once passed as a body.
type Bytes []byte

func (b Bytes) Len() uint64 {
	return uint64(len(b))
}

func (Bytes) body() {}

// Empty returns an empty in-memory body.
func Empty() Body {
	return Bytes(nil)
}

// IsEmpty reports whether the body has no payload. A nil body is considered empty.
func IsEmpty(b Body) bool {
	return b == nil || b.Len() == 0
}

// File is a body backed by an open file. Its size is snapshotted when the body is
// constructed and stays authoritative even if the file is changed afterwards.
type File struct {
	path string
	file *os.File
	size    uint64
	regular bool
}

// NewFile wraps an already open file. Exactly one metadata query is made here.
func NewFile(path string, file *os.File) (*File, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	return &File{
		path: path,
		file: file,
		size:    uint64(stat.Size()),
		regular: stat.Mode().IsRegular(),
	}, nil
}

// OpenFile opens the file at path for reading. The returned errors are those of os.Open
// and os.File.Stat, so they can be checked against fs.ErrNotExist and fs.ErrPermission.
func OpenFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	body, err := NewFile(path, fd)
	if err != nil {
		_ = fd.Close()
		return nil, err
	}

	return body, nil
}

func (f *File) Len() uint64 {
	return f.size
}

func (*File) body() {}

// IsRegular reports whether the opened file is a regular one, as opposed to a directory,
// a pipe or a device.
func (f *File) IsRegular() bool {
	return f.regular
}

// Path returns the path the file was opened by.
func (f *File) Path() string {
	return f.path
}

// Reader consumes the body, returning a reader limited to the snapshotted size. Closing
// the reader closes the file. Subsequent calls return a reader failing with ErrBodyConsumed.
func (f *File) Reader() io.ReadCloser {
	if f.file == nil {
		return consumedReader{}
	}

	file := f.file
	f.file = nil

	return fileReader{
		Reader: io.LimitReader(file, int64(f.size)),
		file:   file,
	}
}

// Close releases the file without reading it. It's safe to call on a consumed body.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	return err
}

type fileReader struct {
	io.Reader
	file *os.File
}

func (f fileReader) Close() error {
	return f.file.Close()
}

type consumedReader struct{}

func (consumedReader) Read([]byte) (int, error) {
	return 0, ErrBodyConsumed
}

func (consumedReader) Close() error {
	return nil
}

// Reader consumes any body variant into a reader.
func Reader(b Body) io.ReadCloser {
	switch body := b.(type) {
	case nil:
		return io.NopCloser(bytes.NewReader(nil))
	case Bytes:
		return io.NopCloser(bytes.NewReader(body))
	case *File:
		return body.Reader()
	default:
		panic("BUG: unknown body variant")
	}
}

// defaultCopyBufferSize is used by Copy for files when no buffer is passed.
const defaultCopyBufferSize = 32 * 1024

// Copy consumes the body, writing its payload into dst. In-memory bodies are written at
// once, files are streamed through buff, so at most len(buff) bytes of a file reside in
// memory at a time. An empty buff is replaced by an internally allocated one.
func Copy(dst io.Writer, b Body, buff []byte) (n int64, err error) {
	switch body := b.(type) {
	case nil:
		return 0, nil
	case Bytes:
		written, err := dst.Write(body)
		return int64(written), err
	case *File:
		if len(buff) == 0 {
			buff = make([]byte, defaultCopyBufferSize)
		}

		reader := body.Reader()
		n, err = copyBuffer(dst, reader, buff)
		if closeErr := reader.Close(); err == nil {
			err = closeErr
		}

		return n, err
	default:
		panic("BUG: unknown body variant")
	}
}

// copyBuffer is io.CopyBuffer without the WriterTo/ReaderFrom shortcuts, which would
// bypass the buffer and its size bound.
func copyBuffer(dst io.Writer, src io.Reader, buff []byte) (written int64, err error) {
	for {
		n, err := src.Read(buff)
		if n > 0 {
			w, werr := dst.Write(buff[:n])
			written += int64(w)

			if werr != nil {
				return written, werr
			}

			if w != n {
				return written, io.ErrShortWrite
			}
		}

		switch err {
		case nil:
		case io.EOF:
			return written, nil
		default:
			return written, err
		}
	}
}
