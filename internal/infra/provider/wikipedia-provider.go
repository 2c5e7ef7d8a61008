package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/infra/logger"
)

// WikipediaProvider is the encyclopedia backend: an OpenSearch title lookup
// followed by the REST summary endpoint for the first title that has an
// extract.
type WikipediaProvider struct {
	Logger  *logger.Logger
	Client  *http.Client
	BaseURL string
}

func NewWikipediaProvider(log *logger.Logger, client *http.Client, baseURL string) *WikipediaProvider {
	return &WikipediaProvider{Logger: log, Client: client, BaseURL: baseURL}
}

func (wp *WikipediaProvider) Lookup(ctx context.Context, keyword string) (*dto.KnowledgeAnswer, error) {
	if keyword == "" {
		return nil, nil
	}

	searchURL := fmt.Sprintf("%s/w/api.php?action=opensearch&limit=5&format=json&origin=*&search=%s",
		wp.BaseURL, url.QueryEscape(keyword))

	// opensearch replies with [query, [titles], [descriptions], [urls]]
	var payload []json.RawMessage
	if err := fetchJSON(ctx, wp.Client, searchURL, &payload); err != nil {
		return nil, err
	}
	var titles []string
	if len(payload) > 1 {
		if err := json.Unmarshal(payload[1], &titles); err != nil {
			return nil, fmt.Errorf("malformed opensearch payload: %w", err)
		}
	}

	for _, title := range titles {
		summaryURL := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", wp.BaseURL, url.PathEscape(title))

		var summary dto.WikipediaSummary
		if err := fetchJSON(ctx, wp.Client, summaryURL, &summary); err != nil {
			wp.Logger.Warn(fmt.Sprintf("Wikipedia summary fetch failed for %q: %v", title, err))
			continue
		}
		if summary.Extract == "" {
			continue
		}
		return &dto.KnowledgeAnswer{
			Source: "wikipedia",
			Title:  summary.Title,
			Text:   truncate(summary.Extract, 600),
		}, nil
	}
	return nil, nil
}
