package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/domain/entities"
	Iservices "chat-connector/internal/domain/interfaces/services"
	"chat-connector/internal/infra/logger"
	"chat-connector/internal/infra/nlp"
	"chat-connector/internal/infra/provider"
)

// Providers bundles the knowledge backends the router tries, in their fixed
// priority order.
type Providers struct {
	Encyclopedia provider.IEncyclopediaProvider
	Summary      provider.ISummaryProvider
	Weather      provider.IWeatherProvider
	Joke         provider.IJokeProvider
	Advice       provider.IAdviceProvider
	Recipe       provider.IRecipeProvider
	Calculator   provider.ICalculatorProvider
}

// DispatchService runs the per-message pipeline: echo guard, context
// fetch/expiry, intent classification, coreference resolution, keyword
// extraction, the prioritized backend chain, and response composition.
type DispatchService struct {
	Logger         *logger.Logger
	ContextService Iservices.IContextService
	Tokenizer      nlp.Tokenizer
	Composer       *ComposerService
	Providers      Providers

	// BackendTimeout bounds every single backend call so one slow backend
	// degrades to "no answer" instead of hanging the request.
	BackendTimeout time.Duration
}

func NewDispatchService(log *logger.Logger, contextService Iservices.IContextService, tokenizer nlp.Tokenizer, composer *ComposerService, providers Providers) *DispatchService {
	return &DispatchService{
		Logger:         log,
		ContextService: contextService,
		Tokenizer:      tokenizer,
		Composer:       composer,
		Providers:      providers,
		BackendTimeout: 8 * time.Second,
	}
}

func (ds *DispatchService) Welcome(ctx context.Context, userID, persona string) (dto.ChatResult, error) {
	unlock := ds.ContextService.Lock(userID)
	defer unlock()

	c := ds.ContextService.GetOrCreate(ctx, userID, persona)
	ds.ContextService.PushHistory(&c, entities.RoleBot, WelcomeMessage)
	if err := ds.ContextService.Save(ctx, c); err != nil {
		return dto.ChatResult{}, err
	}
	return dto.ChatResult{Text: WelcomeMessage, Meta: map[string]any{"welcome": true}}, nil
}

func (ds *DispatchService) Respond(ctx context.Context, userID, message, persona string) (dto.ChatResult, error) {
	unlock := ds.ContextService.Lock(userID)
	defer unlock()

	if ds.ContextService.IsEcho(ctx, userID, message) {
		ds.Logger.Info(fmt.Sprintf("Ignored echo message for user %s", userID))
		return dto.ChatResult{Ignored: true}, nil
	}

	c := ds.ContextService.GetOrCreate(ctx, userID, persona)
	result := nlp.DetectIntent(message)

	var keywords []string
	var coref string
	if result.Intent != nlp.IntentGreeting && result.Intent != nlp.IntentThanks {
		if err := ds.Tokenizer.Ready(ctx); err != nil {
			ds.Logger.Warn(fmt.Sprintf("Tokenizer unavailable, keyword extraction degraded: %v", err))
		}
		keywords = nlp.CompoundKeywords(ds.Tokenizer.Tokenize(message))
		coref = nlp.ResolveReference(message, c)
		// a resolved pronoun means the user is continuing the topic
		if coref == "" {
			c = ds.ContextService.MaybeResetForNewTopic(c, keywords, result.Intent)
		}
	}

	ds.ContextService.PushHistory(&c, entities.RoleUser, message)

	candidates := buildCandidates(coref, keywords, c.LastEntities)
	ds.Logger.Debug(fmt.Sprintf("user=%s intent=%s candidates=%v", userID, result.Intent, candidates))

	reply, meta := ds.route(ctx, &c, result, message, candidates)
	meta["intent"] = string(result.Intent)

	ds.ContextService.PushHistory(&c, entities.RoleBot, reply)
	_ = ds.ContextService.Save(ctx, c)

	return dto.ChatResult{Text: reply, Meta: meta}, nil
}

// buildCandidates orders the query strings the router will try: the
// coreference result first, then the extracted compounds (already longest
// first), then the recent entity titles.
func buildCandidates(coref string, keywords []string, recent []entities.Entity) []string {
	var candidates []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		candidates = append(candidates, s)
	}

	add(coref)
	for _, k := range keywords {
		add(k)
	}
	for _, e := range recent {
		add(e.Title)
	}
	return candidates
}

// try runs one backend call under the per-call timeout and collapses any
// failure into "no answer" so the router just moves on.
func (ds *DispatchService) try(ctx context.Context, name string, call func(context.Context) (*dto.KnowledgeAnswer, error)) *dto.KnowledgeAnswer {
	callCtx, cancel := context.WithTimeout(ctx, ds.BackendTimeout)
	defer cancel()

	ans, err := call(callCtx)
	if err != nil {
		ds.Logger.Warn(fmt.Sprintf("%s lookup failed: %v", name, err))
		return nil
	}
	return ans
}

// route tries the backends in their fixed priority order, short-circuiting
// on the first answer. Reordering these blocks changes which source wins,
// so the order is part of the contract.
func (ds *DispatchService) route(ctx context.Context, c *entities.Context, result nlp.IntentResult, message string, candidates []string) (string, map[string]any) {
	switch result.Intent {
	case nlp.IntentGreeting:
		return ds.Composer.Greeting(), map[string]any{"mode": "greeting"}
	case nlp.IntentThanks:
		return ds.Composer.Thanks(), map[string]any{"mode": "thanks"}
	}

	if result.Intent == nlp.IntentRecipe {
		query := result.Keyword
		if query == "" && len(candidates) > 0 {
			query = candidates[0]
		}
		if ans := ds.try(ctx, "recipe", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
			return ds.Providers.Recipe.Search(cc, query)
		}); ans != nil {
			ds.ContextService.RecordEntity(c, ans.Title)
			return ds.Composer.KnowledgeReply(ans.Title, ans.Text), map[string]any{"source": ans.Source, "usedKeyword": query}
		}
	}

	if result.Intent == nlp.IntentMath {
		expression := result.Keyword
		if expression == "" {
			expression = message
		}
		if ans := ds.try(ctx, "calculator", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
			return ds.Providers.Calculator.Evaluate(cc, expression)
		}); ans != nil {
			return ans.Text, map[string]any{"source": ans.Source}
		}
	}

	if result.Intent == nlp.IntentWeatherFuture {
		return ds.Composer.WeatherFutureUnsupported(), map[string]any{"mode": "weather-future"}
	}

	if result.Intent == nlp.IntentWeather {
		places := candidates
		if result.Place != "" {
			places = buildCandidates(result.Place, candidates, nil)
		}
		for _, place := range places {
			ans := ds.try(ctx, "weather", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
				return ds.Providers.Weather.CurrentWeather(cc, place)
			})
			if ans == nil {
				continue
			}
			ds.ContextService.RecordEntity(c, place)
			return ds.Composer.WeatherReply(ans.Text), map[string]any{"source": ans.Source, "usedKeyword": place}
		}
		if place := nlp.PlacePattern.FindString(message); place != "" {
			if ans := ds.try(ctx, "weather", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
				return ds.Providers.Weather.CurrentWeather(cc, place)
			}); ans != nil {
				ds.ContextService.RecordEntity(c, place)
				return ds.Composer.WeatherReply(ans.Text), map[string]any{"source": ans.Source, "usedKeyword": place}
			}
		}
		return ds.Composer.WeatherFailed(), map[string]any{"mode": "weather-failed"}
	}

	if result.Intent == nlp.IntentJoke {
		if ans := ds.try(ctx, "joke", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
			return ds.Providers.Joke.Fetch(cc)
		}); ans != nil {
			return ans.Text, map[string]any{"source": ans.Source}
		}
	}

	if result.Intent == nlp.IntentAdvice {
		if ans := ds.try(ctx, "advice", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
			return ds.Providers.Advice.Fetch(cc)
		}); ans != nil {
			return ans.Text, map[string]any{"source": ans.Source}
		}
	}

	// general knowledge fallback, regardless of intent
	if ans := ds.try(ctx, "summary", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
		return ds.Providers.Summary.Query(cc, message)
	}); ans != nil {
		ds.ContextService.RecordEntity(c, ans.Title)
		return ds.Composer.KnowledgeReply(ans.Title, ans.Text), map[string]any{"source": ans.Source, "title": ans.Title}
	}

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if ans := ds.try(ctx, "encyclopedia", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
			return ds.Providers.Encyclopedia.Lookup(cc, candidate)
		}); ans != nil {
			ds.ContextService.RecordEntity(c, ans.Title)
			return ds.Composer.KnowledgeReply(ans.Title, ans.Text), map[string]any{"source": ans.Source, "title": ans.Title, "usedKeyword": candidate}
		}
		if ans := ds.try(ctx, "summary", func(cc context.Context) (*dto.KnowledgeAnswer, error) {
			return ds.Providers.Summary.Query(cc, candidate)
		}); ans != nil {
			ds.ContextService.RecordEntity(c, ans.Title)
			return ds.Composer.KnowledgeReply(ans.Title, ans.Text), map[string]any{"source": ans.Source, "title": ans.Title, "usedKeyword": candidate}
		}
	}

	if result.Intent == nlp.IntentQuestion {
		return ds.Composer.Clarify(), map[string]any{"mode": "clarify"}
	}

	return ds.Composer.Smalltalk(c.Persona), map[string]any{"mode": "smalltalk", "persona": c.Persona}
}
