package parse

import "strings"

// Tokenize splits raw on runs of whitespace, lower-casing each token. Empty
// runs produce no tokens, so leading/trailing whitespace is harmless.
func Tokenize(raw string) []string {
	return appendTokens(nil, raw)
}

// appendTokens tokenizes raw into dst, reusing dst's backing array. The
// pipeline uses this to keep the per-input path allocation-free once the
// scratch slice has grown to a steady size.
func appendTokens(dst []string, raw string) []string {
	start := -1
	for i, r := range raw {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if start >= 0 {
				dst = append(dst, strings.ToLower(raw[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		dst = append(dst, strings.ToLower(raw[start:]))
	}
	return dst
}
