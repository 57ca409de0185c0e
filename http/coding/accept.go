package coding

import (
	"bytes"

	"github.com/indigo-web/tinyhttp/internal/strutil"
)

// ParseAcceptEncoding returns the recognized encodings of an Accept-Encoding value in
// the order the client listed them. Unknown tokens, including the ones carrying quality
// values, are silently dropped. Repeated encodings are only kept at their first position.
func ParseAcceptEncoding(value []byte) []Encoding {
	var (
		encodings []Encoding
		seen      Set
	)

	for len(value) > 0 {
		token := value
		if comma := bytes.IndexByte(value, ','); comma != -1 {
			token, value = value[:comma], value[comma+1:]
		} else {
			value = nil
		}

		enc, ok := Parse(strutil.LStripWS(token))
		if !ok || seen.Has(enc) {
			continue
		}

		seen = seen.Add(enc)
		encodings = append(encodings, enc)
	}

	return encodings
}

// Select returns the first of the accepted encodings which is supported.
func Select(accepted []Encoding, supported Set) (Encoding, bool) {
	for _, enc := range accepted {
		if supported.Has(enc) {
			return enc, true
		}
	}

	return 0, false
}
