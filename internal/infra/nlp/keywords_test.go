package nlp

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noun(surface string) Token {
	return Token{Surface: surface, POS: posNoun, SubCategory: "一般"}
}

func properNoun(surface string) Token {
	return Token{Surface: surface, POS: posNoun, SubCategory: "固有名詞"}
}

func particle(surface string) Token {
	return Token{Surface: surface, POS: posParticle, SubCategory: "係助詞"}
}

func TestCompoundKeywordsFusesAdjacentNouns(t *testing.T) {
	tokens := []Token{properNoun("東京"), noun("タワー"), particle("は"), noun("高い建物")}
	keywords := CompoundKeywords(tokens)
	require.Equal(t, []string{"東京タワー", "高い建物"}, keywords)
}

func TestCompoundKeywordsConnectingParticle(t *testing.T) {
	tokens := []Token{properNoun("東京"), particle("の"), noun("天気"), particle("は"), Token{Surface: "？", POS: "記号"}}
	keywords := CompoundKeywords(tokens)
	require.Equal(t, []string{"東京の天気"}, keywords)
}

func TestCompoundKeywordsTrailingConnectorDropped(t *testing.T) {
	// の at the end of a run must not survive as part of the compound
	tokens := []Token{noun("天気"), particle("の"), Token{Surface: "ね", POS: posParticle, SubCategory: "終助詞"}}
	keywords := CompoundKeywords(tokens)
	require.Equal(t, []string{"天気"}, keywords)
}

func TestCompoundKeywordsExcludesPronouns(t *testing.T) {
	tokens := []Token{{Surface: "それ", POS: posNoun, SubCategory: subPronoun}, particle("は"), noun("問題")}
	keywords := CompoundKeywords(tokens)
	require.Equal(t, []string{"問題"}, keywords)
}

func TestCompoundKeywordsKatakanaAndAlnum(t *testing.T) {
	tokens := []Token{
		{Surface: "コンピュータ", POS: "未知語"},
		particle("と"),
		{Surface: "Go-1", POS: "未知語"},
	}
	keywords := CompoundKeywords(tokens)
	assert.Contains(t, keywords, "コンピュータ")
	assert.Contains(t, keywords, "Go-1")
}

func TestCompoundKeywordsVerbBaseFormOnly(t *testing.T) {
	base := Token{Surface: "食べる", POS: posVerb, ConjForm: conjBaseForm}
	conjugated := Token{Surface: "食べ", POS: posVerb, ConjForm: "連用形"}
	assert.Equal(t, []string{"食べる"}, CompoundKeywords([]Token{base}))
	assert.Empty(t, CompoundKeywords([]Token{conjugated}))
}

// Output is sorted by non-increasing rune length, deduplicated, and free of
// one-rune entries.
func TestCompoundKeywordsOrderingInvariant(t *testing.T) {
	tokens := []Token{
		noun("犬"), particle("と"),
		noun("量子"), noun("コンピュータ"), particle("を"),
		noun("天気"), particle("も"),
		noun("天気"), particle("も"),
	}
	keywords := CompoundKeywords(tokens)

	require.Equal(t, []string{"量子コンピュータ", "天気"}, keywords)

	seen := map[string]bool{}
	for i, k := range keywords {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(k), 2)
		assert.False(t, seen[k], "duplicate keyword %q", k)
		seen[k] = true
		if i > 0 {
			assert.GreaterOrEqual(t,
				utf8.RuneCountInString(keywords[i-1]),
				utf8.RuneCountInString(k))
		}
	}
}

func TestCompoundKeywordsEmptyInput(t *testing.T) {
	assert.Empty(t, CompoundKeywords(nil))
}
