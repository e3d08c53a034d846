// Package percent implements the percent-encoding primitives shared by the
// urlx parser and its renderers: RFC 3986 escaping of arbitrary UTF-8 text,
// tolerant decoding, and the minimal display-oriented escaping used for
// pretty-printed URLs.
package percent

import "strings"

const hexdigits = "0123456789ABCDEF"

// unreserved reports whether c may appear literally in any URL component.
func unreserved(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// Encode percent-encodes every byte of s that is not unreserved and not
// listed in keep. Multi-byte UTF-8 sequences are encoded bytewise.
func Encode(s string, keep string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) || strings.IndexByte(keep, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexdigits[c>>4])
		b.WriteByte(hexdigits[c&0xf])
	}
	return b.String()
}

func hexval(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// Decode replaces every valid %XX escape in s by the byte it denotes.
// Malformed escapes are passed through unchanged rather than rejected.
func Decode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) {
			hi, lo := hexval(s[i+1]), hexval(s[i+2])
			if hi >= 0 && lo >= 0 {
				b.WriteByte(byte(hi<<4 | lo))
				i += 2
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// PrettyEncode escapes only what a human-facing rendering cannot show
// verbatim: control characters, '#', '%', '?' outside fragments, and spaces
// that end the string or begin a run of spaces. Everything else, including
// non-ASCII text, stays literal.
func PrettyEncode(s string, forFragment bool) string {
	var b strings.Builder
	for i, r := range s {
		u := uint32(r)
		escape := u < 0x20 ||
			(!forFragment && r == '?') ||
			r == '#' || r == '%' ||
			(r == ' ' && (i+1 == len(s) || s[i+1] == ' '))
		if escape {
			b.WriteByte('%')
			b.WriteByte(hexdigits[(u&0xf0)>>4])
			b.WriteByte(hexdigits[u&0xf])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
