package routes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/indigo-web/tinyhttp/http"
	"github.com/indigo-web/tinyhttp/http/headers"
	"github.com/indigo-web/tinyhttp/http/method"
	"github.com/indigo-web/tinyhttp/http/status"
	"github.com/stretchr/testify/require"
)

func newRequest(m method.Method, target string, body string, hdrs ...headers.Header) *http.Request {
	return &http.Request{
		Method:  m,
		Target:  []byte(target),
		Version: []byte("HTTP/1.1"),
		Headers: headers.New(hdrs...),
		Body:    http.Bytes(body),
	}
}

func header(name, value string) headers.Header {
	return headers.Header{Name: []byte(name), Value: []byte(value)}
}

func TestRoutes(t *testing.T) {
	dir := t.TempDir()
	r := New(dir)

	t.Run("root", func(t *testing.T) {
		resp := r.OnRequest(newRequest(method.GET, "/", ""))
		require.Equal(t, status.OK, resp.Code)
		require.True(t, http.IsEmpty(resp.Body))
		require.False(t, resp.Headers.Has(headers.ContentType))
	})

	t.Run("echo", func(t *testing.T) {
		resp := r.OnRequest(newRequest(method.GET, "/echo/abc", ""))
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, http.Bytes("abc"), resp.Body)
		require.Equal(t, "text/plain", resp.Headers.Value(headers.ContentType))

		resp = r.OnRequest(newRequest(method.GET, "/echo", ""))
		require.Equal(t, status.OK, resp.Code)
		require.True(t, http.IsEmpty(resp.Body))
	})

	t.Run("user-agent", func(t *testing.T) {
		resp := r.OnRequest(newRequest(method.GET, "/user-agent", "", header("user-agent", "foobar/1.2.3")))
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, http.Bytes("foobar/1.2.3"), resp.Body)

		resp = r.OnRequest(newRequest(method.GET, "/user-agent", ""))
		require.Equal(t, status.NotFound, resp.Code)
	})

	t.Run("unknown", func(t *testing.T) {
		resp := r.OnRequest(newRequest(method.GET, "/unknown", ""))
		require.Equal(t, status.NotFound, resp.Code)
	})

	t.Run("upload and download", func(t *testing.T) {
		resp := r.OnRequest(newRequest(method.POST, "/files/foo", "Hello, world!"))
		require.Equal(t, status.Created, resp.Code)

		content, err := os.ReadFile(filepath.Join(dir, "foo"))
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(content))

		resp = r.OnRequest(newRequest(method.GET, "/files/foo", ""))
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, "application/octet-stream", resp.Headers.Value(headers.ContentType))
		require.Equal(t, "13", resp.Headers.Value(headers.ContentLength))

		file, ok := resp.Body.(*http.File)
		require.True(t, ok)
		require.NoError(t, file.Close())
	})

	t.Run("upload truncates", func(t *testing.T) {
		require.Equal(t, status.Created, r.OnRequest(newRequest(method.POST, "/files/bar", "long content")).Code)
		require.Equal(t, status.Created, r.OnRequest(newRequest(method.POST, "/files/bar", "short")).Code)

		content, err := os.ReadFile(filepath.Join(dir, "bar"))
		require.NoError(t, err)
		require.Equal(t, "short", string(content))
	})

	t.Run("missing file", func(t *testing.T) {
		resp := r.OnRequest(newRequest(method.GET, "/files/missing", ""))
		require.Equal(t, status.NotFound, resp.Code)
	})

	t.Run("no name", func(t *testing.T) {
		require.Equal(t, status.BadRequest, r.OnRequest(newRequest(method.POST, "/files/", "data")).Code)
		require.Equal(t, status.NotFound, r.OnRequest(newRequest(method.GET, "/files/", "")).Code)
	})

	t.Run("escaping the directory", func(t *testing.T) {
		require.Equal(t, status.BadRequest, r.OnRequest(newRequest(method.POST, "/files/../escaped", "data")).Code)
		require.Equal(t, status.NotFound, r.OnRequest(newRequest(method.GET, "/files/../../etc/passwd", "")).Code)
		require.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escaped"))
	})

	t.Run("directory", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
		require.Equal(t, status.NotFound, r.OnRequest(newRequest(method.GET, "/files/sub", "")).Code)
	})
}
