package coding

import (
	"strings"

	"github.com/indigo-web/tinyhttp/internal/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Encoding is a content-coding the engine knows by name. Whether it can actually be
// applied depends on the compressor backend, see Set.
type Encoding uint8

const (
	Gzip Encoding = iota
	Compress
	Deflate
	Br
	Zstd

	// Count is the number of known encodings.
	Count int = iota
)

// List holds all known encodings in their declaration order.
var List = [Count]Encoding{Gzip, Compress, Deflate, Br, Zstd}

var tokens = [Count]string{
	Gzip:     "gzip",
	Compress: "compress",
	Deflate:  "deflate",
	Br:       "br",
	Zstd:     "zstd",
}

// Token returns the wire token of the encoding.
func (e Encoding) Token() string {
	if int(e) >= Count {
		return ""
	}

	return tokens[e]
}

func (e Encoding) String() string {
	return e.Token()
}

// Parse maps a wire token onto the encoding. Tokens are compared ignoring ASCII case.
func Parse(token []byte) (Encoding, bool) {
	for _, enc := range List {
		if strcomp.EqualFold(uf.B2S(token), tokens[enc]) {
			return enc, true
		}
	}

	return 0, false
}

// Set is a compact set of encodings. The zero value is empty.
type Set uint8

// NewSet returns a set containing the passed encodings.
func NewSet(encodings ...Encoding) (s Set) {
	for _, enc := range encodings {
		s = s.Add(enc)
	}

	return s
}

func (s Set) Add(e Encoding) Set {
	return s | 1<<e
}

func (s Set) Has(e Encoding) bool {
	return s&(1<<e) != 0
}

func (s Set) Empty() bool {
	return s == 0
}

// String renders the set as an Accept-Encoding-like list, e.g. "gzip, zstd".
func (s Set) String() string {
	var b strings.Builder

	for _, enc := range List {
		if !s.Has(enc) {
			continue
		}

		if b.Len() > 0 {
			b.WriteString(", ")
		}

		b.WriteString(enc.Token())
	}

	return b.String()
}
