package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/infra/logger"
)

// MealDBProvider is the recipe backend (TheMealDB search API).
type MealDBProvider struct {
	Logger  *logger.Logger
	Client  *http.Client
	BaseURL string
}

func NewMealDBProvider(log *logger.Logger, client *http.Client, baseURL string) *MealDBProvider {
	return &MealDBProvider{Logger: log, Client: client, BaseURL: baseURL}
}

func (rp *MealDBProvider) Search(ctx context.Context, query string) (*dto.KnowledgeAnswer, error) {
	if query == "" {
		return nil, nil
	}

	searchURL := fmt.Sprintf("%s/api/json/v1/1/search.php?s=%s", rp.BaseURL, url.QueryEscape(query))

	var payload dto.RecipeSearchResult
	if err := fetchJSON(ctx, rp.Client, searchURL, &payload); err != nil {
		return nil, err
	}
	if len(payload.Meals) == 0 {
		return nil, nil
	}

	meal := payload.Meals[0]
	return &dto.KnowledgeAnswer{
		Source: "themealdb",
		Title:  meal.Name,
		Text:   truncate(meal.Instructions, 600),
		Meta:   map[string]any{"category": meal.Category, "area": meal.Area},
	}, nil
}
