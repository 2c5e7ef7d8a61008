package entities

import "time"

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Context holds the per-user conversational state the dispatch pipeline
// reads and mutates on every turn.
type Context struct {
	UserID       string    `json:"user_id" bson:"user_id"`
	History      []Turn    `json:"history" bson:"history"`
	LastKeyword  string    `json:"last_keyword" bson:"last_keyword"`
	LastEntities []Entity  `json:"last_entities" bson:"last_entities"`
	Persona      string    `json:"persona" bson:"persona"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

type Turn struct {
	Role      string    `json:"role" bson:"role"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Entity is a successfully resolved knowledge title, kept most-recent-first
// as the coreference fallback pool.
type Entity struct {
	Title     string    `json:"title" bson:"title"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// NewContext returns a fresh, empty context for a user.
func NewContext(userID, persona string, now time.Time) Context {
	if persona == "" {
		persona = "neutral"
	}
	return Context{
		UserID:       userID,
		History:      []Turn{},
		LastEntities: []Entity{},
		Persona:      persona,
		UpdatedAt:    now,
	}
}
