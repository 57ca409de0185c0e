package codec

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/coding"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var _ Compressor = new(Native)

type writeResetter interface {
	io.WriteCloser
	Reset(dst io.Writer)
}

type instantiator = func() writeResetter

// Native compresses bodies in-process. It needs no executables, therefore its support
// is known upfront: gzip, deflate and zstd.
type Native struct {
	pools map[coding.Encoding]*sync.Pool
}

func NewNative() *Native {
	n := &Native{pools: make(map[coding.Encoding]*sync.Pool, 3)}
	n.register(coding.Gzip, newGZIP)
	n.register(coding.Deflate, newDeflate)
	n.register(coding.Zstd, newZSTD)

	return n
}

func (n *Native) register(enc coding.Encoding, newInst instantiator) {
	n.pools[enc] = &sync.Pool{
		New: func() any {
			return newInst()
		},
	}
}

func (n *Native) Supported() (s coding.Set) {
	for enc := range n.pools {
		s = s.Add(enc)
	}

	return s
}

func (n *Native) Compress(ctx context.Context, body http.Body, enc coding.Encoding) (http.Body, error) {
	pool, found := n.pools[enc]
	if !found {
		return nil, unsupported(enc)
	}

	src := http.Reader(body)
	defer src.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := pool.Get().(writeResetter)
	defer pool.Put(w)

	var out bytes.Buffer
	w.Reset(&out)

	if _, err := io.Copy(w, src); err != nil {
		return nil, &Error{Program: enc.Token(), Err: err}
	}

	if err := w.Close(); err != nil {
		return nil, &Error{Program: enc.Token(), Err: err}
	}

	return http.Bytes(out.Bytes()), nil
}

func newGZIP() writeResetter {
	return gzip.NewWriter(nil)
}

func newDeflate() writeResetter {
	w, err := flate.NewWriter(nil, 5)
	if err != nil {
		panic(err)
	}

	return w
}

func newZSTD() writeResetter {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}

	return w
}
