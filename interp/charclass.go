package interp

// Character classification helpers used by word reading and okurigana
// stripping.

func isHiragana(r rune) bool {
	return r >= 0x3041 && r <= 0x309F // ぁ..ゟ
}

func isKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

func isCJKIdeograph(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func isASCIIAlnumOrUnderscore(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// excludedPunctuation are full-width punctuation ranges explicitly excluded
// from "word character" even though they otherwise fall in a wide unicode
// band.
func isExcludedPunctuation(r rune) bool {
	if r >= 0x2190 && r <= 0x21FF {
		return true
	}
	if r >= 0x25A0 && r <= 0x25FF {
		return true
	}
	if r >= 0x3000 && r <= 0x303F {
		return true
	}
	return false
}

// isWordChar reports whether r may continue a word token.
func isWordChar(r rune) bool {
	if isExcludedPunctuation(r) {
		return false
	}
	if isASCIIAlnumOrUnderscore(r) {
		return true
	}
	if isCJKIdeograph(r) || isKatakana(r) || isHiragana(r) {
		return true
	}
	// Any other non-ASCII-punctuation code point (accented letters etc.)
	// is treated as a word character too, matching the original's
	// "anything above 0xE0" catch-all.
	if r >= 0xE0 {
		return true
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// stripOkurigana strips inflectional tail kana: characters up to the first
// non-hiragana are kept verbatim; once the first non-hiragana (kanji,
// katakana, ASCII) is seen, subsequent hiragana are dropped.
func stripOkurigana(word string) string {
	runes := []rune(word)
	var out []rune
	seenNonHiragana := false
	for _, r := range runes {
		if !seenNonHiragana {
			out = append(out, r)
			if !isHiragana(r) {
				seenNonHiragana = true
			}
			continue
		}
		if isHiragana(r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
