package Iservices

import (
	"context"

	"chat-connector/internal/domain/entities"
	"chat-connector/internal/infra/nlp"
)

// IContextService owns the per-user Context lifecycle: lazy creation, TTL
// expiry, topic-change reset, bounded history/entity mutation and the echo
// guard. Mutations for one user must happen under Lock(userID).
type IContextService interface {
	// Lock serializes access to one user's context; the returned func
	// releases it.
	Lock(userID string) func()

	// GetOrCreate returns the stored context when it is still within TTL,
	// otherwise a fresh empty one. Nothing is persisted until Save.
	GetOrCreate(ctx context.Context, userID, persona string) entities.Context

	// Peek returns the stored context without creating or expiring anything.
	Peek(ctx context.Context, userID string) (entities.Context, bool)

	PushHistory(c *entities.Context, role, text string)
	RecordEntity(c *entities.Context, title string)

	// MaybeResetForNewTopic discards the context when the current keywords
	// share no overlap with the last resolved keyword and the intent is not
	// a clarifying question.
	MaybeResetForNewTopic(c entities.Context, keywords []string, intent nlp.Intent) entities.Context

	// IsEcho reports whether message exactly repeats the most recent bot
	// utterance for this user.
	IsEcho(ctx context.Context, userID, message string) bool

	Save(ctx context.Context, c entities.Context) error
}
