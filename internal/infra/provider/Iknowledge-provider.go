package provider

import (
	"context"

	"chat-connector/internal/domain/dto"
)

// Every provider returns (nil, nil) for "no answer" and a non-nil error for
// a transport or decode failure. The router collapses both into "try the
// next backend"; nothing here ever reaches the HTTP layer as an error.

type IEncyclopediaProvider interface {
	Lookup(ctx context.Context, keyword string) (*dto.KnowledgeAnswer, error)
}

type ISummaryProvider interface {
	Query(ctx context.Context, q string) (*dto.KnowledgeAnswer, error)
}

type IWeatherProvider interface {
	CurrentWeather(ctx context.Context, place string) (*dto.KnowledgeAnswer, error)
}

type IJokeProvider interface {
	Fetch(ctx context.Context) (*dto.KnowledgeAnswer, error)
}

type IAdviceProvider interface {
	Fetch(ctx context.Context) (*dto.KnowledgeAnswer, error)
}

type IRecipeProvider interface {
	Search(ctx context.Context, query string) (*dto.KnowledgeAnswer, error)
}

type ICalculatorProvider interface {
	Evaluate(ctx context.Context, expression string) (*dto.KnowledgeAnswer, error)
}
