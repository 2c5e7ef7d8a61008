package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"chat-connector/internal/domain/entities"
	Irepository "chat-connector/internal/domain/interfaces/repository"
	"chat-connector/internal/infra/logger"
	"chat-connector/internal/infra/nlp"
)

const maxEntities = 10

// ContextService owns the per-user Context lifecycle. A context expires
// when it has not been touched for TTL (6h by default, the value the
// conversation history was tuned for); history is bounded FIFO and the
// entity pool holds the ten most recent titles.
type ContextService struct {
	Store      Irepository.ContextStore
	Logger     *logger.Logger
	TTL        time.Duration
	MaxHistory int

	// Now is replaceable so expiry is testable without sleeping.
	Now func() time.Time

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewContextService(store Irepository.ContextStore, log *logger.Logger, ttl time.Duration, maxHistory int) *ContextService {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	if maxHistory <= 0 {
		maxHistory = 80
	}
	return &ContextService{
		Store:      store,
		Logger:     log,
		TTL:        ttl,
		MaxHistory: maxHistory,
		Now:        time.Now,
		userLocks:  make(map[string]*sync.Mutex),
	}
}

// Lock serializes all context access for one user. Cross-user requests stay
// fully independent.
func (cs *ContextService) Lock(userID string) func() {
	cs.mu.Lock()
	lock, ok := cs.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		cs.userLocks[userID] = lock
	}
	cs.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (cs *ContextService) GetOrCreate(ctx context.Context, userID, persona string) entities.Context {
	now := cs.Now()

	stored, found, err := cs.Store.Get(ctx, userID)
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Context lookup failed for %s, starting fresh: %v", userID, err))
		return entities.NewContext(userID, persona, now)
	}
	if !found || now.Sub(stored.UpdatedAt) > cs.TTL {
		return entities.NewContext(userID, persona, now)
	}

	if stored.UserID == "" {
		stored.UserID = userID
	}
	if persona != "" {
		stored.Persona = persona
	}
	if stored.Persona == "" {
		stored.Persona = "neutral"
	}
	return stored
}

func (cs *ContextService) Peek(ctx context.Context, userID string) (entities.Context, bool) {
	stored, found, err := cs.Store.Get(ctx, userID)
	if err != nil || !found {
		return entities.Context{}, false
	}
	return stored, true
}

func (cs *ContextService) PushHistory(c *entities.Context, role, text string) {
	c.History = append(c.History, entities.Turn{Role: role, Text: text, Timestamp: cs.Now()})
	if len(c.History) > cs.MaxHistory {
		c.History = c.History[len(c.History)-cs.MaxHistory:]
	}
	c.UpdatedAt = cs.Now()
}

// RecordEntity unshifts a resolved title into the coreference pool and
// makes it the last known keyword.
func (cs *ContextService) RecordEntity(c *entities.Context, title string) {
	if title == "" {
		return
	}
	c.LastEntities = append([]entities.Entity{{Title: title, Timestamp: cs.Now()}}, c.LastEntities...)
	if len(c.LastEntities) > maxEntities {
		c.LastEntities = c.LastEntities[:maxEntities]
	}
	c.LastKeyword = title
	c.UpdatedAt = cs.Now()
}

// MaybeResetForNewTopic discards the running context when the current turn
// clearly moved on: none of the extracted keywords overlaps the last
// resolved keyword and the intent is not a clarifying question. Runs before
// the user turn is pushed.
func (cs *ContextService) MaybeResetForNewTopic(c entities.Context, keywords []string, intent nlp.Intent) entities.Context {
	if c.LastKeyword == "" || len(keywords) == 0 {
		return c
	}
	if intent == nlp.IntentQuestion {
		return c
	}
	for _, k := range keywords {
		if strings.Contains(k, c.LastKeyword) || strings.Contains(c.LastKeyword, k) {
			return c
		}
	}

	cs.Logger.Info(fmt.Sprintf("Topic change detected for %s, resetting context", c.UserID))
	return entities.NewContext(c.UserID, c.Persona, cs.Now())
}

// IsEcho reports whether message repeats the most recent bot utterance
// verbatim (after trimming). Echoes come from client-side loops, not users.
func (cs *ContextService) IsEcho(ctx context.Context, userID, message string) bool {
	if strings.TrimSpace(message) == "" {
		return false
	}
	stored, found := cs.Peek(ctx, userID)
	if !found {
		return false
	}
	for i := len(stored.History) - 1; i >= 0; i-- {
		turn := stored.History[i]
		if turn.Role == entities.RoleBot && turn.Text != "" {
			return strings.TrimSpace(turn.Text) == strings.TrimSpace(message)
		}
	}
	return false
}

func (cs *ContextService) Save(ctx context.Context, c entities.Context) error {
	if err := cs.Store.Put(ctx, c.UserID, c); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to save context for %s: %v", c.UserID, err))
		return err
	}
	return nil
}
