package headers

import (
	"github.com/indigo-web/tinyhttp/internal/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Builder accumulates pairs before freezing them into Headers. It's owned by a single
// constructing party and must not be used after Build.
type Builder struct {
	pairs []Header
}

func NewBuilder(prealloc int) *Builder {
	return &Builder{pairs: make([]Header, 0, prealloc)}
}

// Add appends a pair. Pairs with an equal name are kept as is, not merged.
func (b *Builder) Add(name, value []byte) *Builder {
	b.pairs = append(b.pairs, Header{Name: name, Value: value})
	return b
}

// Set replaces the first pair with an equal name, or appends a new one.
func (b *Builder) Set(name, value string) *Builder {
	for i, pair := range b.pairs {
		if strcomp.EqualFold(uf.B2S(pair.Name), name) {
			b.pairs[i] = Header{Name: []byte(name), Value: []byte(value)}
			return b
		}
	}

	return b.Add([]byte(name), []byte(value))
}

func (b *Builder) Len() int {
	return len(b.pairs)
}

// Build hands the accumulated pairs over to the immutable Headers. The builder is
// left empty.
func (b *Builder) Build() Headers {
	pairs := b.pairs
	b.pairs = nil

	return Headers{pairs: pairs}
}
