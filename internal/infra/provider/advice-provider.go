package provider

import (
	"context"
	"net/http"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/infra/logger"
)

// AdviceSlipProvider fetches one random piece of advice from the Advice
// Slip API.
type AdviceSlipProvider struct {
	Logger  *logger.Logger
	Client  *http.Client
	BaseURL string
}

func NewAdviceSlipProvider(log *logger.Logger, client *http.Client, baseURL string) *AdviceSlipProvider {
	return &AdviceSlipProvider{Logger: log, Client: client, BaseURL: baseURL}
}

func (ap *AdviceSlipProvider) Fetch(ctx context.Context) (*dto.KnowledgeAnswer, error) {
	var payload dto.AdviceAnswer
	if err := fetchJSON(ctx, ap.Client, ap.BaseURL+"/advice", &payload); err != nil {
		return nil, err
	}
	if payload.Slip.Advice == "" {
		return nil, nil
	}
	return &dto.KnowledgeAnswer{Source: "advice", Title: "advice", Text: payload.Slip.Advice}, nil
}
