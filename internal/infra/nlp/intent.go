package nlp

import (
	"regexp"
	"strings"
)

type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentThanks        Intent = "thanks"
	IntentWeather       Intent = "weather"
	IntentWeatherFuture Intent = "weather-future"
	IntentJoke          Intent = "joke"
	IntentAdvice        Intent = "advice"
	IntentRecipe        Intent = "recipe"
	IntentMath          Intent = "math"
	IntentQuestion      Intent = "question"
	IntentUnknown       Intent = "unknown"
)

// IntentResult carries the matched intent plus whatever the winning pattern
// captured along the way (a place name for weather, a cleaned query for
// recipe, an arithmetic expression for math).
type IntentResult struct {
	Intent  Intent
	Place   string
	Keyword string
}

var (
	mathPattern       = regexp.MustCompile(`[0-9０-９]\s*[+\-*/×÷^%]\s*[0-9０-９]|計算して`)
	futurePattern     = regexp.MustCompile(`明日|あした|明後日|あさって|来週|週末`)
	expressionPattern = regexp.MustCompile(`[0-9０-９+\-*/×÷^%().\s]+`)

	recipeTriggerPattern = regexp.MustCompile(`(の|を|は|が)?(レシピ|作り方|献立|料理)(は|を|って)?|を?教えて`)
)

// PlacePattern picks a Japanese place name out of free text; the weather
// route uses it as a last resort when no candidate keyword geocodes.
var PlacePattern = regexp.MustCompile(`([^\s　]+?(?:市|都|道|府|県|町|村|区)|東京|大阪|京都|北海道|名古屋|横浜|福岡|札幌)`)

// intentRules is an ordered decision list: the first match wins. The order
// is a behavioral contract, not an accident. Specific intents (weather,
// recipe, math) sit above the generic question catch-all, so 「なぜ雨なの？」
// is weather, never question.
var intentRules = []struct {
	intent Intent
	re     *regexp.Regexp
}{
	{IntentGreeting, regexp.MustCompile(`^(おはよう|こんにちは|こんばんは|やあ|もしもし|おっす|ハロー)`)},
	{IntentThanks, regexp.MustCompile(`ありがとう|助かった|感謝`)},
	{IntentWeather, regexp.MustCompile(`天気|気温|降水|雨|晴れ`)},
	{IntentJoke, regexp.MustCompile(`ジョーク|おもしろ|笑わせて|ネタ`)},
	{IntentAdvice, regexp.MustCompile(`助言|アドバイス|どうすれば|どうしたら`)},
	{IntentRecipe, regexp.MustCompile(`レシピ|作り方|献立|料理`)},
	{IntentMath, mathPattern},
	{IntentQuestion, regexp.MustCompile(`\?|？|かな|かも|だろう|どう|なぜ|なに|何|どの|いつ|どこ`)},
}

func DetectIntent(text string) IntentResult {
	if text == "" {
		return IntentResult{Intent: IntentUnknown}
	}

	for _, rule := range intentRules {
		if !rule.re.MatchString(text) {
			continue
		}

		result := IntentResult{Intent: rule.intent}
		switch rule.intent {
		case IntentWeather:
			if futurePattern.MatchString(text) {
				result.Intent = IntentWeatherFuture
			}
			result.Place = PlacePattern.FindString(text)
		case IntentRecipe:
			result.Keyword = StripRecipeTriggers(text)
		case IntentMath:
			result.Keyword = ExtractExpression(text)
		}
		return result
	}
	return IntentResult{Intent: IntentUnknown}
}

// StripRecipeTriggers removes the recipe trigger words so only the dish
// itself is sent to the recipe backend.
func StripRecipeTriggers(text string) string {
	cleaned := recipeTriggerPattern.ReplaceAllString(text, "")
	cleaned = strings.Trim(cleaned, "？?！!。 　")
	return strings.TrimSpace(cleaned)
}

var fullWidthDigits = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
	"×", "*", "÷", "/",
)

// ExtractExpression pulls the longest arithmetic-looking run out of text
// and normalizes it for the calculator backend.
func ExtractExpression(text string) string {
	best := ""
	for _, m := range expressionPattern.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		if len(m) > len(best) {
			best = m
		}
	}
	return strings.TrimSpace(fullWidthDigits.Replace(best))
}
