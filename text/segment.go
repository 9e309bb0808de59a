package text

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// UnbreakableRuns splits text into its unbreakable measurement units per
// CSS min-content semantics: runs of word-forming grapheme clusters split
// at whitespace and punctuation, and single grapheme clusters for
// characters isWordForming rejects (Han ideographs, Hiragana and Katakana
// among them). uniseg supplies only the grapheme-cluster iteration.
func UnbreakableRuns(text string) []string {
	var runs []string
	gr := uniseg.NewGraphemes(text)
	var word []rune
	flushWord := func() {
		if len(word) > 0 {
			runs = append(runs, string(word))
			word = word[:0]
		}
	}
	for gr.Next() {
		cluster := gr.Runes()
		if len(cluster) == 1 && unicode.IsSpace(cluster[0]) {
			flushWord()
			continue
		}
		if isWordForming(cluster[0]) {
			word = append(word, cluster...)
			continue
		}
		flushWord()
		runs = append(runs, string(cluster))
	}
	flushWord()
	return runs
}

// isWordForming reports whether r participates in space-delimited word
// formation (letters, marks, numbers) as opposed to being treated as its
// own unbreakable unit (most CJK ideographs, which have no inherent word
// boundaries and so are measured cluster-by-cluster).
func isWordForming(r rune) bool {
	if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) || r == '-' || r == '\''
}

// ForcedBreakLines splits text on hard line breaks (\n, \r\n, \r) for
// max-content line-width measurement.
func ForcedBreakLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}
