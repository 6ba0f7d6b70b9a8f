package interp

// preReadIncludes scans tokens for top-level `!"path"を取込` directives,
// emits the paths for the host to resolve, and replaces the matched tokens
// with comments so the parser ignores them.
func preReadIncludes(tokens []Token) (paths []string, rewritten []Token) {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	lineStart := true
	for i := 0; i < len(out); i++ {
		tok := out[i]

		if lineStart && tok.Kind == KindNot &&
			i+2 < len(out) &&
			out[i+1].Kind == KindString &&
			out[i+2].Kind == KindWord &&
			out[i+2].Value.Str == "取込" {

			paths = append(paths, out[i+1].Value.Str)
			out[i] = Token{Kind: KindComment, Pos: tok.Pos}
			out[i+1] = Token{Kind: KindComment, Pos: out[i+1].Pos}
			out[i+2] = Token{Kind: KindComment, Pos: out[i+2].Pos}
			i += 2
			lineStart = false
			continue
		}

		switch tok.Kind {
		case KindEOL, KindBlockBegin, KindBlockEnd:
			lineStart = true
		case KindComment:
			// comments don't affect line-start tracking
		default:
			lineStart = false
		}
	}

	return paths, out
}
