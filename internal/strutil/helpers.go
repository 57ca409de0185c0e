package strutil

// IsSpace reports whether c is an ASCII whitespace byte: space, horizontal tab,
// line feed, form feed or carriage return.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}

	return false
}

// LStripWS returns b without its leading ASCII whitespace. The returned slice
// shares memory with b.
func LStripWS(b []byte) []byte {
	for i, c := range b {
		if !IsSpace(c) {
			return b[i:]
		}
	}

	return b[len(b):]
}

// CutWS returns the first whitespace-delimited token of b and the rest with the
// whitespace run in between stripped. Leading whitespace of b is skipped first.
func CutWS(b []byte) (token, rest []byte) {
	b = LStripWS(b)

	for i, c := range b {
		if IsSpace(c) {
			return b[:i], LStripWS(b[i:])
		}
	}

	return b, b[len(b):]
}

// Fields splits b around runs of ASCII whitespace, discarding empty tokens.
// Tokens share memory with b.
func Fields(b []byte) (fields [][]byte) {
	for {
		var token []byte
		token, b = CutWS(b)
		if len(token) == 0 {
			return fields
		}

		fields = append(fields, token)
	}
}
