package main

import (
	"errors"
	"strconv"
	"strings"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// splitFields splits a console line on blanks. Double quotes group a field
// and may contain backslash escapes for '"' and '\'.
func splitFields(line string) ([]string, error) {
	var (
		fields  []string
		cur     strings.Builder
		inField bool
		quoted  bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '\\' && i+1 < len(line) && (line[i+1] == '"' || line[i+1] == '\\'):
			i++
			cur.WriteByte(line[i])
		case c == '"':
			quoted = !quoted
			inField = true
		case !quoted && (c == ' ' || c == '\t'):
			if inField {
				fields = append(fields, cur.String())
				cur.Reset()
				inField = false
			}
		default:
			cur.WriteByte(c)
			inField = true
		}
	}
	if quoted {
		return nil, errUnterminatedQuote
	}
	if inField {
		fields = append(fields, cur.String())
	}
	return fields, nil
}

// unescape expands the backslash escapes printf(1) users expect in a format
// argument: \n, \t, \r, \\, \xNN, octal and so on. An escape that does not
// parse is kept literally.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		if s[0] != '\\' {
			b.WriteByte(s[0])
			s = s[1:]
			continue
		}
		v, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			b.WriteByte('\\')
			s = s[1:]
			continue
		}
		if multibyte {
			b.WriteRune(v)
		} else {
			b.WriteByte(byte(v))
		}
		s = tail
	}
	return b.String()
}
