package headers

import (
	"iter"
	"strconv"
	"unicode/utf8"

	"github.com/indigo-web/tinyhttp/internal/strcomp"
	"github.com/indigo-web/utils/uf"
)

type Header struct {
	Name, Value []byte
}

// Headers is an immutable ordered collection of header pairs. Lookups are case-insensitive
// and linear, which is fine for the amount of headers an ordinary request carries. Duplicate
// names aren't merged: lookups return the first match.
//
// Headers must be treated as read-only. Every update (Assoc, Insert) returns a new instance,
// so views obtained earlier never change. The zero value is an empty collection.
type Headers struct {
	pairs []Header
}

// New returns Headers containing the given pairs in the given order. The pairs are copied.
func New(pairs ...Header) Headers {
	return Headers{pairs: clone(pairs)}
}

// Get returns the value of the first header whose name matches ignoring ASCII case.
func (h Headers) Get(name string) (value []byte, found bool) {
	for _, pair := range h.pairs {
		if strcomp.EqualFold(uf.B2S(pair.Name), name) {
			return pair.Value, true
		}
	}

	return nil, false
}

// Value returns the first value corresponding to the name. Otherwise, empty string is returned.
func (h Headers) Value(name string) string {
	value, _ := h.Get(name)
	return string(value)
}

// Has indicates, whether there's an entry of the name.
func (h Headers) Has(name string) bool {
	_, found := h.Get(name)
	return found
}

// Len returns a number of stored pairs, duplicates included.
func (h Headers) Len() int {
	return len(h.pairs)
}

func (h Headers) Empty() bool {
	return h.Len() == 0
}

// Iter returns an iterator over the pairs in their stored order.
func (h Headers) Iter() iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		for _, pair := range h.pairs {
			if !yield(pair.Name, pair.Value) {
				return
			}
		}
	}
}

// Assoc returns new Headers where every pair named equally (ignoring case) is replaced
// by the passed one. If there's no such pair, the result holds the same pairs as before.
func (h Headers) Assoc(name, value string) Headers {
	pairs, _ := h.assoc(name, value)
	return Headers{pairs: pairs}
}

// Insert behaves like Assoc, except a missing header is appended.
func (h Headers) Insert(name, value string) Headers {
	pairs, found := h.assoc(name, value)
	if !found {
		pairs = append(pairs, Header{Name: []byte(name), Value: []byte(value)})
	}

	return Headers{pairs: pairs}
}

func (h Headers) assoc(name, value string) (pairs []Header, found bool) {
	pairs = make([]Header, len(h.pairs), len(h.pairs)+1)
	replacement := Header{Name: []byte(name), Value: []byte(value)}

	for i, pair := range h.pairs {
		if strcomp.EqualFold(uf.B2S(pair.Name), name) {
			pair, found = replacement, true
		}

		pairs[i] = pair
	}

	return pairs, found
}

// Read looks the header up and parses its value. Headers which are absent, aren't valid
// UTF-8 or can't be parsed are reported as not found, so a partially parsed value is never
// returned.
func Read[T any](h Headers, name string, parse func(string) (T, error)) (value T, ok bool) {
	raw, found := h.Get(name)
	if !found || !utf8.Valid(raw) {
		return value, false
	}

	parsed, err := parse(uf.B2S(raw))
	if err != nil {
		return value, false
	}

	return parsed, true
}

// ReadUint reads the header as a decimal unsigned integer.
func ReadUint(h Headers, name string) (uint64, bool) {
	return Read(h, name, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
