package interp

// josiList is the closed list of recognized postpositional particles,
// ordered so longest matches precede shorter prefixes.
var josiList = []string{
	// sentence-ending fillers (checked first so で does not shadow です,
	// である and でした)
	"こと", "である", "です", "します", "でした",
	// used by if-statements
	"でなければ", "なければ", "ならば", "なら", "たら", "れば",
	// general particles
	"について", "くらい", "なのか", "までを", "までの",
	"による", "とは", "から", "まで", "だけ",
	"より", "ほど", "など", "いて", "えて",
	"きて", "けて", "して", "って", "にて",
	"みて", "めて", "ねて", "では", "には",
	"は~", "んで", "は", "を", "に",
	"へ", "で", "と", "が", "の",
}

// josiMeaningless marks sentence-ending fillers: the cursor advances past
// them but no joshi is reported.
var josiMeaningless = map[string]bool{
	"こと": true, "である": true, "です": true, "します": true, "でした": true,
}

// josiConditionalPositive / josiConditionalNegative classify the joshi used
// by if-statements.
var josiConditionalPositive = map[string]bool{
	"ならば": true, "なら": true, "たら": true, "れば": true,
}

var josiConditionalNegative = map[string]bool{
	"でなければ": true, "なければ": true,
}

// readJosi attempts each joshi in listed order, advancing the cursor on the
// first match. If the match is a meaningless filler, the cursor still
// advances but "" is returned.
func readJosi(c *Cursor) string {
	for _, j := range josiList {
		if c.eqStr(j) {
			c.advanceN(len([]rune(j)))
			if josiMeaningless[j] {
				return ""
			}
			return j
		}
	}
	return ""
}

// conditionalKind classifies a joshi for use by if-statement condition
// parsing: positive/negative/neither.
type conditionalKind int

const (
	condNone conditionalKind = iota
	condPositive
	condNegative
)

func classifyConditional(josi string) conditionalKind {
	switch {
	case josiConditionalPositive[josi]:
		return condPositive
	case josiConditionalNegative[josi]:
		return condNegative
	default:
		return condNone
	}
}

// renbunJoshi are the chaining particles that bundle successive
// value-expressions into one compound sentence.
var renbunJoshi = map[string]bool{
	"して": true, "って": true, "きて": true,
}
