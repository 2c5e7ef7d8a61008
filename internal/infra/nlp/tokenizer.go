package nlp

import (
	"context"
	"fmt"
	"sync"

	"chat-connector/internal/infra/logger"

	"github.com/ikawaha/kagome-dict/ipa"
	kagome "github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one morpheme as produced by the analyzer. Fields follow the IPA
// dictionary feature layout: POS is 品詞, SubCategory is 品詞細分類1 and
// ConjForm is 活用形.
type Token struct {
	Surface     string
	POS         string
	SubCategory string
	ConjForm    string
}

// Tokenizer is the boundary to the morphological analyzer. Ready is
// idempotent and safe for concurrent first callers; Tokenize returns nil
// when the analyzer is unavailable so downstream extraction degrades to
// whole-string heuristics instead of failing.
type Tokenizer interface {
	Ready(ctx context.Context) error
	Tokenize(text string) []Token
}

// KagomeTokenizer backs Tokenizer with the kagome IPA dictionary. The
// dictionary is built at most once, behind a shared sync.Once, no matter
// how many callers race on first use.
type KagomeTokenizer struct {
	Logger *logger.Logger

	build func() (*kagome.Tokenizer, error)
	once  sync.Once
	tok   *kagome.Tokenizer
	err   error
}

func NewKagomeTokenizer(log *logger.Logger) *KagomeTokenizer {
	return &KagomeTokenizer{
		Logger: log,
		build: func() (*kagome.Tokenizer, error) {
			return kagome.New(ipa.Dict(), kagome.OmitBosEos())
		},
	}
}

func (k *KagomeTokenizer) Ready(ctx context.Context) error {
	k.once.Do(func() {
		k.tok, k.err = k.build()
		if k.Logger == nil {
			return
		}
		if k.err != nil {
			k.Logger.Error(fmt.Sprintf("Tokenizer initialization failed, running degraded: %v", k.err))
		} else {
			k.Logger.Info("Tokenizer ready")
		}
	})
	return k.err
}

func (k *KagomeTokenizer) Tokenize(text string) []Token {
	if err := k.Ready(context.Background()); err != nil || k.tok == nil {
		return nil
	}

	raw := k.tok.Tokenize(text)
	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		token := Token{Surface: t.Surface}
		features := t.Features()
		if len(features) > 0 {
			token.POS = features[0]
		}
		if len(features) > 1 {
			token.SubCategory = features[1]
		}
		if len(features) > 5 {
			token.ConjForm = features[5]
		}
		tokens = append(tokens, token)
	}
	return tokens
}
