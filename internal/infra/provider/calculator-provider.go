package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"chat-connector/internal/domain/dto"
	"chat-connector/internal/infra/logger"
)

// MathJSProvider evaluates arithmetic through the math.js web API. The API
// answers plain text; a 400 means the expression did not parse, which is
// "no answer" rather than a failure.
type MathJSProvider struct {
	Logger  *logger.Logger
	Client  *http.Client
	BaseURL string
}

func NewMathJSProvider(log *logger.Logger, client *http.Client, baseURL string) *MathJSProvider {
	return &MathJSProvider{Logger: log, Client: client, BaseURL: baseURL}
}

func (cp *MathJSProvider) Evaluate(ctx context.Context, expression string) (*dto.KnowledgeAnswer, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	evalURL := fmt.Sprintf("%s/v4/?expr=%s", cp.BaseURL, url.QueryEscape(expression))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, evalURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := cp.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, evalURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	result := strings.TrimSpace(string(body))
	if result == "" {
		return nil, nil
	}

	return &dto.KnowledgeAnswer{
		Source: "mathjs",
		Title:  expression,
		Text:   fmt.Sprintf("%s = %s", expression, result),
	}, nil
}
