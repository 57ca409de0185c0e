package strcomp

// caseShift is the distance between an ASCII lowercase letter and its uppercase pair.
const caseShift = 'a' - 'A'

// EqualFold reports whether a and b are equal ignoring the case of ASCII letters. Bytes
// outside the ASCII alphabet must match exactly.
func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range len(a) {
		if !equalByte(a[i], b[i]) {
			return false
		}
	}

	return true
}

func equalByte(x, y byte) bool {
	if x == y {
		return true
	}

	if !isAlpha(x) || !isAlpha(y) {
		return false
	}

	return x-y == caseShift || y-x == caseShift
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
