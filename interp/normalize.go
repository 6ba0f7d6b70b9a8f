package interp

import (
	"strings"

	"golang.org/x/text/width"
)

// normalize converts full-width ASCII and certain punctuation to half-width,
// leaving string literals and comments untouched. It never rejects input.
func normalize(src string) string {
	runes := []rune(src)
	var out strings.Builder
	out.Grow(len(src))

	i := 0
	for i < len(runes) {
		r := runes[i]

		switch r {
		case '"', '\'':
			end, ok := findDelimEnd(runes, i+1, r)
			out.WriteRune(r)
			out.WriteString(string(runes[i+1 : end]))
			if ok {
				out.WriteRune(r)
				i = end + 1
			} else {
				i = end
			}
			continue
		case '「': // 「
			end, ok := findDelimEnd(runes, i+1, '」')
			out.WriteRune(r)
			out.WriteString(string(runes[i+1 : end]))
			if ok {
				out.WriteRune('」')
				i = end + 1
			} else {
				i = end
			}
			continue
		case '『': // 『
			end, ok := findDelimEnd(runes, i+1, '』')
			out.WriteRune(r)
			out.WriteString(string(runes[i+1 : end]))
			if ok {
				out.WriteRune('』')
				i = end + 1
			} else {
				i = end
			}
			continue
		}

		// line comments: // ／／ ※ #
		if (r == '/' && i+1 < len(runes) && runes[i+1] == '/') ||
			(r == '／' && i+1 < len(runes) && runes[i+1] == '／') ||
			r == '※' || r == '#' {
			end := i
			for end < len(runes) && runes[end] != '\n' {
				end++
			}
			out.WriteString(string(runes[i:end]))
			i = end
			continue
		}

		// block comment /* ... */
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			end := i + 2
			for end+1 < len(runes) && !(runes[end] == '*' && runes[end+1] == '/') {
				end++
			}
			if end+1 < len(runes) {
				end += 2
			} else {
				end = len(runes)
			}
			out.WriteString(string(runes[i:end]))
			i = end
			continue
		}

		out.WriteRune(toHalfWidth(r))
		i++
	}

	return out.String()
}

// findDelimEnd finds the index of the closing delimiter starting the scan
// at start, returning (index-of-delimiter, true) or (len(runes), false) if
// unterminated.
func findDelimEnd(runes []rune, start int, delim rune) (int, bool) {
	for j := start; j < len(runes); j++ {
		if runes[j] == delim {
			return j, true
		}
	}
	return len(runes), false
}

// Code points with special half-width mappings, kept named rather than as
// anonymous rune literals.
const (
	ideographicFullStop rune = 0x3002 // 。-> ;
	ideographicComma    rune = 0x3001 // 、-> ,
	byteOrderMark       rune = 0xFEFF
	ideographicSpace    rune = 0x3000
	fullWidthSpacesLo   rune = 0x2002
	fullWidthSpacesHi   rune = 0x200B
	fullWidthAsciiLo    rune = 0xFF01
	fullWidthAsciiHi    rune = 0xFF5E
)

// toHalfWidth maps a single rune outside of string/comment context to its
// half-width counterpart.
func toHalfWidth(r rune) rune {
	switch r {
	case ideographicFullStop:
		return ';'
	case ideographicComma:
		return ','
	case byteOrderMark, ideographicSpace:
		return ' '
	}
	if r >= fullWidthSpacesLo && r <= fullWidthSpacesHi {
		return ' '
	}
	if r >= fullWidthAsciiLo && r <= fullWidthAsciiHi {
		// golang.org/x/text/width folds full-width ASCII forms to their
		// half-width counterparts; used for the bulk printable range rather
		// than hand-rolling the FF01..FF5E arithmetic.
		folded := []rune(width.Fold.String(string(r)))
		if len(folded) > 0 {
			return folded[0]
		}
	}
	return r
}
