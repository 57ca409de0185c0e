package http

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/http/status"
	"github.com/stretchr/testify/require"
)

func pairs(h headers.Headers) (result [][2]string) {
	for name, value := range h.Iter() {
		result = append(result, [2]string{string(name), string(value)})
	}

	return result
}

func newRequest() *Request {
	return &Request{Version: []byte("HTTP/1.1")}
}

func TestResponse(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		resp := Respond(newRequest()).String("abc")
		require.Equal(t, "HTTP/1.1", string(resp.Version))
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, [][2]string{
			{"Content-Type", "text/plain"},
			{"Content-Length", "3"},
		}, pairs(resp.Headers))
		require.Equal(t, Bytes("abc"), resp.Body)
	})

	t.Run("build", func(t *testing.T) {
		resp := Respond(newRequest()).Code(status.NotFound).Build()
		require.Equal(t, status.NotFound, resp.Code)
		require.False(t, resp.Headers.Has(headers.ContentType))
		require.Equal(t, "0", resp.Headers.Value(headers.ContentLength))
		require.True(t, IsEmpty(resp.Body))
	})

	t.Run("content-length is always overridden", func(t *testing.T) {
		resp := Respond(newRequest()).
			Header(headers.ContentLength, "100").
			String("Hello")
		require.Equal(t, "5", resp.Headers.Value(headers.ContentLength))
		require.Equal(t, 2, resp.Headers.Len())
	})

	t.Run("content-encoding", func(t *testing.T) {
		resp := Respond(newRequest()).ContentEncoding("gzip").String("Hello")
		require.Equal(t, "gzip", resp.Headers.Value(headers.ContentEncoding))

		resp = Respond(newRequest()).ContentEncoding("").String("Hello")
		require.False(t, resp.Headers.Has(headers.ContentEncoding))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foo")
		require.NoError(t, os.WriteFile(path, []byte("Hello, world!"), 0o644))

		resp := Respond(newRequest()).File(path)
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, "application/octet-stream", resp.Headers.Value(headers.ContentType))
		require.Equal(t, "13", resp.Headers.Value(headers.ContentLength))

		file, ok := resp.Body.(*File)
		require.True(t, ok)
		require.NoError(t, file.Close())
	})

	t.Run("missing file", func(t *testing.T) {
		resp := Respond(newRequest()).File(filepath.Join(t.TempDir(), "missing"))
		require.Equal(t, status.NotFound, resp.Code)
		require.Equal(t, "0", resp.Headers.Value(headers.ContentLength))
	})

	t.Run("directory", func(t *testing.T) {
		resp := Respond(newRequest()).File(t.TempDir())
		require.Equal(t, status.NotFound, resp.Code)
	})

	t.Run("error", func(t *testing.T) {
		resp := Respond(newRequest()).Error(errors.New("something went wrong"))
		require.Equal(t, status.InternalServerError, resp.Code)
		require.Equal(t, "text/plain", resp.Headers.Value(headers.ContentType))
		require.Equal(t, Bytes("something went wrong"), resp.Body)
	})
}
