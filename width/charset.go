// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package width

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultCharset lists the half-width characters used when no charset is
// configured: printable ASCII and the half-width katakana block.
const DefaultCharset = `\x20-\x7E\x{FF61}-\x{FF9F}`

func init() {
	Register("charset", func(cfg Config) (Classifier, error) {
		return NewCharset(stringOption(cfg, "charset", DefaultCharset))
	})
}

// Charset classifies runes matched by a regular-expression character class
// as Half and everything else as Full.
type Charset struct {
	re    *regexp.Regexp
	ascii [utf8.RuneSelf]bool
}

// NewCharset compiles list as the body of a character class, so "a-z0-9"
// becomes [a-z0-9]. Besides RE2 syntax, \uXXXX and \u{X...} escapes are
// accepted.
func NewCharset(list string) (*Charset, error) {
	if list == "" {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidCharset)
	}
	re, err := regexp.Compile("[" + unicodeEscapes(list) + "]")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCharset, err)
	}
	c := &Charset{re: re}
	for r := rune(0); r < utf8.RuneSelf; r++ {
		c.ascii[r] = re.MatchString(string(r))
	}
	return c, nil
}

// Classify implements Classifier.
func (c *Charset) Classify(r rune) Class {
	if r >= 0 && r < utf8.RuneSelf {
		if c.ascii[r] {
			return Half
		}
		return Full
	}
	if c.re.MatchString(string(r)) {
		return Half
	}
	return Full
}

// unicodeEscapes rewrites \uXXXX and \u{X...} into the RE2 form \x{...}.
// Other escapes, including an escaped backslash, are copied unchanged.
func unicodeEscapes(list string) string {
	if !strings.Contains(list, `\u`) {
		return list
	}
	var b strings.Builder
	for i := 0; i < len(list); i++ {
		if list[i] != '\\' || i+1 >= len(list) {
			b.WriteByte(list[i])
			continue
		}
		if list[i+1] != 'u' {
			b.WriteString(list[i : i+2])
			i++
			continue
		}
		rest := list[i+2:]
		if strings.HasPrefix(rest, "{") {
			if end := strings.IndexByte(rest, '}'); end > 1 && isHex(rest[1:end]) {
				b.WriteString(`\x{` + rest[1:end] + `}`)
				i += 2 + end
				continue
			}
		} else if len(rest) >= 4 && isHex(rest[:4]) {
			b.WriteString(`\x{` + rest[:4] + `}`)
			i += 5
			continue
		}
		b.WriteString(list[i : i+2])
		i++
	}
	return b.String()
}

func isHex(s string) bool {
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return s != ""
}
