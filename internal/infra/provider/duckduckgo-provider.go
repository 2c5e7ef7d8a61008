package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/infra/logger"
)

// DuckDuckGoProvider is the general-web-summary backend (Instant Answer
// API).
type DuckDuckGoProvider struct {
	Logger  *logger.Logger
	Client  *http.Client
	BaseURL string
}

func NewDuckDuckGoProvider(log *logger.Logger, client *http.Client, baseURL string) *DuckDuckGoProvider {
	return &DuckDuckGoProvider{Logger: log, Client: client, BaseURL: baseURL}
}

func (dp *DuckDuckGoProvider) Query(ctx context.Context, q string) (*dto.KnowledgeAnswer, error) {
	if q == "" {
		return nil, nil
	}

	queryURL := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		dp.BaseURL, url.QueryEscape(q))

	var payload dto.DuckDuckGoAnswer
	if err := fetchJSON(ctx, dp.Client, queryURL, &payload); err != nil {
		return nil, err
	}
	if payload.AbstractText == "" {
		return nil, nil
	}

	title := payload.Heading
	if title == "" {
		title = q
	}
	return &dto.KnowledgeAnswer{
		Source: "duckduckgo",
		Title:  title,
		Text:   truncate(payload.AbstractText, 600),
	}, nil
}
