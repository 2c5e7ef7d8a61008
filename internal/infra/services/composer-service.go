package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"chat-connector/internal/infra/logger"
)

// WelcomeMessage is the reply to an init/welcome request.
const WelcomeMessage = "何か質問はありますか？"

const (
	weatherFailedMessage = "ごめん、場所の特定ができなかったか、天気情報を取得できませんでした。地名を教えてもらえる？"
	weatherFutureMessage = "ごめん、先の天気予報はまだ出せないんだ。今の天気なら調べられるよ。"
)

var greetingPool = []string{
	"こんにちは！今日どうする？",
	"やあ！何か知りたい？",
	"おっす、調べ・雑談どっちがいい？",
}

var thanksPool = []string{
	"どういたしまして！",
	"いつでも聞いてね。",
}

var clarifyPool = []string{
	"いい質問だね…少し考えさせて。",
	"その点については色々な見方があるよ。具体的にはどの部分が気になる？",
	"なるほど、もう少し背景を教えてくれる？",
}

var knowledgeOutros = []string{
	"他にも知りたい？",
	"もっと詳しく？",
	"どうする？",
}

var smalltalkPools = map[string][]string{
	"neutral": {
		"ふむ、なるほどね。",
		"へえ、そうなんだ！",
		"面白いね。もっと聞かせて？",
		"いいね、その話。",
	},
	"snarky": {
		"そう？でも本気で言ってるの？",
		"おや、それは意外（としか言えない）",
		"ふーん、君は勇気あるね。",
	},
	"kind": {
		"いいね、よくやったね。",
		"素敵な話だね。ありがとう。",
		"そういうの聞けて嬉しいよ。",
	},
}

// ComposerService wraps answers and fallbacks in phrasing picked uniformly
// from persona-tagged pools. Pools are data; an unknown persona or an empty
// pool falls closed to the neutral one.
type ComposerService struct {
	Logger *logger.Logger

	mu   sync.Mutex
	rand *rand.Rand
}

func NewComposerService(log *logger.Logger) *ComposerService {
	return &ComposerService{
		Logger: log,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (cp *ComposerService) pick(pool []string) string {
	if len(pool) == 0 {
		pool = smalltalkPools["neutral"]
	}
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return pool[cp.rand.Intn(len(pool))]
}

func (cp *ComposerService) Greeting() string {
	return cp.pick(greetingPool)
}

func (cp *ComposerService) Thanks() string {
	return cp.pick(thanksPool)
}

func (cp *ComposerService) Clarify() string {
	return cp.pick(clarifyPool)
}

func (cp *ComposerService) Smalltalk(persona string) string {
	pool, ok := smalltalkPools[persona]
	if !ok {
		pool = smalltalkPools["neutral"]
	}
	return cp.pick(pool)
}

// KnowledgeReply frames an encyclopedia or web-summary hit.
func (cp *ComposerService) KnowledgeReply(title, text string) string {
	return fmt.Sprintf("お調べしました：「%s」 — %s %s", title, text, cp.pick(knowledgeOutros))
}

// WeatherReply appends a follow-up prompt to the forecast text.
func (cp *ComposerService) WeatherReply(text string) string {
	return text + " " + cp.pick(knowledgeOutros)
}

func (cp *ComposerService) WeatherFailed() string {
	return weatherFailedMessage
}

func (cp *ComposerService) WeatherFutureUnsupported() string {
	return weatherFutureMessage
}
