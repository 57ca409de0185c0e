package codec

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/coding"
	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/http/status"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

type staticSupport coding.Set

func (s staticSupport) Supported() coding.Set {
	return coding.Set(s)
}

func requireProgram(t *testing.T, name string) {
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s is not installed", name)
	}
}

// shell builds a program table where every encoding runs the script. For stdin $0 is
// "-", for files $0 is "--" and the path is $1.
func shell(script string) Programs {
	program := Program{Name: "sh", Args: []string{"-c", script}}
	programs := make(Programs, coding.Count)
	for _, enc := range coding.List {
		programs[enc] = program
	}

	return programs
}

func allSupported() coding.Support {
	return staticSupport(coding.NewSet(coding.List[:]...))
}

func tempFile(t *testing.T, content string) *http.File {
	path := filepath.Join(t.TempDir(), "body")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	file, err := http.OpenFile(path)
	require.NoError(t, err)

	return file
}

func response(body string, encoding string) *http.Response {
	return http.NewBuilder([]byte("HTTP/1.1")).
		ContentEncoding(encoding).
		String(body)
}

func gunzip(t *testing.T, data []byte) string {
	r, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	result, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(result)
}

func TestExternal(t *testing.T) {
	requireProgram(t, "sh")

	t.Run("bytes through stdin", func(t *testing.T) {
		c := NewExternal(shell(`test "$0" = - && tr a-z A-Z`), allSupported())
		body, err := c.Compress(context.Background(), http.Bytes("hello"), coding.Gzip)
		require.NoError(t, err)
		require.Equal(t, http.Bytes("HELLO"), body)
	})

	t.Run("file by path", func(t *testing.T) {
		file := tempFile(t, "Hello, world!")
		c := NewExternal(shell(`test "$0" = -- && cat "$1"`), allSupported())
		body, err := c.Compress(context.Background(), file, coding.Zstd)
		require.NoError(t, err)
		require.Equal(t, http.Bytes("Hello, world!"), body)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		c := NewExternal(shell(`printf partial; echo boom >&2; exit 3`), allSupported())
		_, err := c.Compress(context.Background(), http.Bytes("hello"), coding.Gzip)

		var codecErr *Error
		require.ErrorAs(t, err, &codecErr)
		require.Equal(t, "sh", codecErr.Program)
		require.Equal(t, "sh: exit status 3: boom", err.Error())
	})

	t.Run("missing program", func(t *testing.T) {
		programs := Programs{coding.Gzip: {Name: "definitely-not-an-existing-program"}}
		_, err := NewExternal(programs, allSupported()).Compress(context.Background(), http.Bytes("hello"), coding.Gzip)
		require.Error(t, err)
	})

	t.Run("no program for encoding", func(t *testing.T) {
		_, err := NewExternal(DefaultPrograms(), allSupported()).Compress(context.Background(), http.Bytes("hello"), coding.Deflate)
		require.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("file named like a flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "-d")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
		file, err := http.OpenFile(path)
		require.NoError(t, err)

		c := NewExternal(shell(`printf '%s|' "$@"`), allSupported())
		body, err := c.Compress(context.Background(), file, coding.Gzip)
		require.NoError(t, err)
		require.Equal(t, http.Bytes(path+"|"), body)
	})

	t.Run("no program closes the file", func(t *testing.T) {
		file := tempFile(t, "content")
		_, err := NewExternal(Programs{}, allSupported()).Compress(context.Background(), file, coding.Gzip)
		require.ErrorIs(t, err, ErrUnsupported)

		_, err = file.Reader().Read(make([]byte, 1))
		require.ErrorIs(t, err, http.ErrBodyConsumed)
	})

	t.Run("cancellation kills the running program", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		time.AfterFunc(50*time.Millisecond, cancel)

		c := NewExternal(shell(`sleep 10`), allSupported())
		start := time.Now()
		_, err := c.Compress(ctx, http.Bytes("hello"), coding.Gzip)
		require.Error(t, err)
		require.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("real gzip", func(t *testing.T) {
		requireProgram(t, "gzip")
		text := strings.Repeat("Hello, world! ", 100)
		c := NewExternal(DefaultPrograms(), allSupported())

		body, err := c.Compress(context.Background(), http.Bytes(text), coding.Gzip)
		require.NoError(t, err)
		require.Equal(t, text, gunzip(t, body.(http.Bytes)))

		body, err = c.Compress(context.Background(), tempFile(t, text), coding.Gzip)
		require.NoError(t, err)
		require.Equal(t, text, gunzip(t, body.(http.Bytes)))
	})
}

func TestNative(t *testing.T) {
	text := strings.Repeat("Lorem ipsum dolor sit amet. ", 64)
	c := NewNative()
	require.Equal(t, coding.NewSet(coding.Gzip, coding.Deflate, coding.Zstd), c.Supported())

	decoders := map[coding.Encoding]func(io.Reader) (io.Reader, error){
		coding.Gzip: func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		},
		coding.Deflate: func(r io.Reader) (io.Reader, error) {
			return flate.NewReader(r), nil
		},
		coding.Zstd: func(r io.Reader) (io.Reader, error) {
			return zstd.NewReader(r)
		},
	}

	for enc, newDecoder := range decoders {
		t.Run(enc.Token(), func(t *testing.T) {
			// twice, so the pooled writer is reused
			for range 2 {
				body, err := c.Compress(context.Background(), http.Bytes(text), enc)
				require.NoError(t, err)

				r, err := newDecoder(bytes.NewReader(body.(http.Bytes)))
				require.NoError(t, err)
				result, err := io.ReadAll(r)
				require.NoError(t, err)
				require.Equal(t, text, string(result))
			}
		})
	}

	t.Run("file", func(t *testing.T) {
		body, err := c.Compress(context.Background(), tempFile(t, text), coding.Gzip)
		require.NoError(t, err)
		require.Equal(t, text, gunzip(t, body.(http.Bytes)))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := c.Compress(context.Background(), http.Bytes(text), coding.Br)
		require.ErrorIs(t, err, ErrUnsupported)
	})
}

func TestEncode(t *testing.T) {
	requireProgram(t, "sh")

	t.Run("no content-encoding", func(t *testing.T) {
		resp := response("abc", "")
		encoded, err := Encode(context.Background(), NewExternal(shell("exit 1"), allSupported()), resp)
		require.NoError(t, err)
		require.Same(t, resp, encoded)
	})

	t.Run("unsupported content-encoding", func(t *testing.T) {
		resp := response("abc", "br")
		c := NewExternal(shell("exit 1"), staticSupport(coding.NewSet(coding.Gzip)))
		encoded, err := Encode(context.Background(), c, resp)
		require.NoError(t, err)
		require.Same(t, resp, encoded)
	})

	t.Run("replaces body and length", func(t *testing.T) {
		resp := response("abc", "gzip")
		encoded, err := Encode(context.Background(), NewExternal(shell(`cat; printf def`), allSupported()), resp)
		require.NoError(t, err)
		require.Equal(t, status.OK, encoded.Code)
		require.Equal(t, http.Bytes("abcdef"), encoded.Body)
		require.Equal(t, "6", encoded.Headers.Value(headers.ContentLength))
		require.Equal(t, "gzip", encoded.Headers.Value(headers.ContentEncoding))
		require.Equal(t, "text/plain", encoded.Headers.Value(headers.ContentType))
		require.Equal(t, "3", resp.Headers.Value(headers.ContentLength))
	})

	t.Run("failure degrades to 500", func(t *testing.T) {
		resp := response("abc", "gzip")
		c := NewExternal(shell(`printf partial-output; echo broken pipe >&2; exit 1`), allSupported())
		encoded, err := Encode(context.Background(), c, resp)
		require.Error(t, err)
		require.Equal(t, status.InternalServerError, encoded.Code)
		require.Equal(t, http.Bytes(err.Error()), encoded.Body)
		require.Equal(t, "text/plain", encoded.Headers.Value(headers.ContentType))
		require.Equal(t, "sh: exit status 1: broken pipe", err.Error())
		require.False(t, encoded.Headers.Has(headers.ContentEncoding))
		require.Equal(t, "HTTP/1.1", string(encoded.Version))
	})

	t.Run("native", func(t *testing.T) {
		encoded, err := Encode(context.Background(), NewNative(), response("Hello, world!", "gzip"))
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", gunzip(t, encoded.Body.(http.Bytes)))
	})
}
