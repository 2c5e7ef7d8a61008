package nlp

import (
	"regexp"
	"strings"

	"chat-connector/internal/domain/entities"
)

var pronouns = []string{"それ", "あれ", "これ", "ここ", "そこ", "あそこ", "この", "その", "あの"}

var demonstrativeNounPattern = regexp.MustCompile(`(この|その|あの)([^\s　]+)`)

// ResolveReference maps a demonstrative or pronoun in text onto something
// mentioned earlier in the conversation. It returns "" when the text has no
// pronoun or nothing in the context can anchor one. The decision tree is
// deterministic: a captured 「この/その/あの + noun」 is matched against the
// recent entity titles first, otherwise the most recent entity wins, then
// the last resolved keyword.
func ResolveReference(text string, c entities.Context) string {
	if text == "" {
		return ""
	}

	hasPronoun := false
	for _, p := range pronouns {
		if strings.Contains(text, p) {
			hasPronoun = true
			break
		}
	}
	if !hasPronoun {
		return ""
	}

	if m := demonstrativeNounPattern.FindStringSubmatch(text); m != nil {
		noun := m[2]
		for _, e := range c.LastEntities {
			if e.Title == noun || strings.Contains(e.Title, noun) {
				return e.Title
			}
		}
		// unknown noun: treat it as a literal new candidate
		return noun
	}

	if len(c.LastEntities) > 0 {
		return c.LastEntities[0].Title
	}
	if c.LastKeyword != "" {
		return c.LastKeyword
	}
	return ""
}
