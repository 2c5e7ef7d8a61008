package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/infra/logger"
)

// JokeProvider fetches from the Official Joke API and falls back to the
// advice backend when the joke service has nothing.
type JokeProvider struct {
	Logger   *logger.Logger
	Client   *http.Client
	BaseURL  string
	Fallback IAdviceProvider
}

func NewJokeProvider(log *logger.Logger, client *http.Client, baseURL string, fallback IAdviceProvider) *JokeProvider {
	return &JokeProvider{Logger: log, Client: client, BaseURL: baseURL, Fallback: fallback}
}

func (jp *JokeProvider) Fetch(ctx context.Context) (*dto.KnowledgeAnswer, error) {
	var joke dto.JokeAnswer
	err := fetchJSON(ctx, jp.Client, jp.BaseURL+"/random_joke", &joke)
	if err == nil && joke.Setup != "" {
		text := strings.TrimSpace(fmt.Sprintf("%s — %s", joke.Setup, joke.Punchline))
		return &dto.KnowledgeAnswer{Source: "joke", Title: "joke", Text: text}, nil
	}
	if err != nil {
		jp.Logger.Warn(fmt.Sprintf("Joke fetch failed, trying advice fallback: %v", err))
	}

	if jp.Fallback != nil {
		if ans, ferr := jp.Fallback.Fetch(ctx); ferr == nil && ans != nil {
			ans.Source = "advice-slip"
			return ans, nil
		}
	}
	return nil, err
}
