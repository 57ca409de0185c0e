package status

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		for _, code := range KnownCodes {
			require.NotEmpty(t, Text(code))
			require.Equal(t, strconv.Itoa(int(code)), string(AppendCode(nil, code)))
		}
	})

	t.Run("reason phrases", func(t *testing.T) {
		require.Equal(t, "OK", Text(OK))
		require.Equal(t, "Created", Text(Created))
		require.Equal(t, "Bad Request", Text(BadRequest))
		require.Equal(t, "Not Found", Text(NotFound))
		require.Equal(t, "Internal Server Error", Text(InternalServerError))
		require.Equal(t, "404 Not Found", NotFound.String())
	})

	t.Run("unknown", func(t *testing.T) {
		require.Panics(t, func() {
			Text(418)
		})
	})
}
