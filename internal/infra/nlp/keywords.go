package nlp

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	posNoun      = "名詞"
	posAdjective = "形容詞"
	posVerb      = "動詞"
	posParticle  = "助詞"

	subPronoun = "代名詞"

	conjBaseForm = "基本形"
)

var (
	katakanaPattern = regexp.MustCompile(`^[ァ-ヴー]+$`)
	alnumPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// connectingParticles are fused into the current compound instead of
// flushing it, so 東京 の 天気 becomes 東京の天気.
var connectingParticles = map[string]bool{
	"の": true,
}

func allowedToken(t Token) bool {
	if t.POS == posNoun {
		return t.SubCategory != subPronoun
	}
	if katakanaPattern.MatchString(t.Surface) || alnumPattern.MatchString(t.Surface) {
		return true
	}
	if t.POS == posAdjective {
		return true
	}
	if t.POS == posVerb && t.ConjForm == conjBaseForm {
		return true
	}
	return false
}

// CompoundKeywords groups contiguous runs of allowed tokens into compound
// keyword strings, deduplicates them, drops anything shorter than two runes
// and returns the rest longest first. Longer compounds are more likely to
// match a specific encyclopedia title, so the router tries them before
// their looser substrings.
func CompoundKeywords(tokens []Token) []string {
	var keywords []string
	var buf []string

	flush := func() {
		// a trailing connector never closes a compound
		for len(buf) > 0 && connectingParticles[buf[len(buf)-1]] {
			buf = buf[:len(buf)-1]
		}
		if len(buf) > 0 {
			keywords = append(keywords, strings.Join(buf, ""))
		}
		buf = buf[:0]
	}

	for i, t := range tokens {
		switch {
		case allowedToken(t):
			buf = append(buf, t.Surface)
		case t.POS == posParticle && connectingParticles[t.Surface] &&
			len(buf) > 0 && i+1 < len(tokens) && allowedToken(tokens[i+1]):
			buf = append(buf, t.Surface)
		default:
			flush()
		}
	}
	flush()

	seen := make(map[string]bool, len(keywords))
	unique := keywords[:0]
	for _, k := range keywords {
		if seen[k] || utf8.RuneCountInString(k) < 2 {
			continue
		}
		seen[k] = true
		unique = append(unique, k)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return utf8.RuneCountInString(unique[i]) > utf8.RuneCountInString(unique[j])
	})
	return unique
}
