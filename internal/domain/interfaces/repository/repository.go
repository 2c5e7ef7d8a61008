package repository

import (
	"context"

	"chat-connector/internal/domain/entities"
)

// ContextStore is the key-value home of per-user conversational contexts.
// Get returns found=false both for a missing key and for a malformed stored
// record; callers treat either as "no context yet".
type ContextStore interface {
	Get(ctx context.Context, userID string) (entities.Context, bool, error)
	Put(ctx context.Context, userID string, entity entities.Context) error
	Delete(ctx context.Context, userID string) error
}
