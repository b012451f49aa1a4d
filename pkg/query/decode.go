package query

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrMalformedEscape is returned by DecodeURI for truncated or non-hex
// percent escapes and for escapes that do not form valid UTF-8.
var ErrMalformedEscape = errors.New("malformed percent escape")

// reservedURIChars are left encoded by DecodeURI so that the structure of
// the URL (separators, query delimiters) survives decoding.
const reservedURIChars = ";/?:@&=+$,#"

// DecodeURI resolves percent escapes in s the way browsers decode a full
// URI: escapes that stand for a reserved delimiter are kept verbatim,
// everything else is decoded. Multi-byte escapes must decode to valid
// UTF-8.
func DecodeURI(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}

		c, ok := unhexPair(s, i)
		if !ok {
			return "", ErrMalformedEscape
		}

		if c < utf8.RuneSelf {
			if strings.IndexByte(reservedURIChars, c) >= 0 {
				b.WriteString(s[i : i+3])
			} else {
				b.WriteByte(c)
			}
			i += 3
			continue
		}

		// Gather the continuation escapes of a multi-byte sequence.
		n := utf8SeqLen(c)
		if n == 0 {
			return "", ErrMalformedEscape
		}
		seq := []byte{c}
		j := i + 3
		for len(seq) < n {
			cc, ok := unhexPair(s, j)
			if !ok || cc&0xC0 != 0x80 {
				return "", ErrMalformedEscape
			}
			seq = append(seq, cc)
			j += 3
		}
		if !utf8.Valid(seq) {
			return "", ErrMalformedEscape
		}
		b.Write(seq)
		i = j
	}

	return b.String(), nil
}

func unhexPair(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, ok1 := unhex(s[i+1])
	lo, ok2 := unhex(s[i+2])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// utf8SeqLen returns the encoded length announced by a UTF-8 lead byte, or
// 0 if c cannot start a sequence.
func utf8SeqLen(c byte) int {
	switch {
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	}
	return 0
}
