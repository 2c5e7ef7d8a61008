package provider

import (
	"context"
	"net/http"
	"time"

	"chat-connector/internal/infra/logger"
)

func newTestLogger() *logger.Logger {
	return logger.NewLogger(context.Background(), false)
}

func newTestClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}
