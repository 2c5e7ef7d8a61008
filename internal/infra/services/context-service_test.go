package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"chat-connector/internal/domain/entities"
	"chat-connector/internal/infra/logger"
	"chat-connector/internal/infra/nlp"
	"chat-connector/internal/infra/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContextService(t *testing.T) *ContextService {
	t.Helper()
	log := logger.NewLogger(context.Background(), false)
	return NewContextService(repository.NewMemoryContextStore(), log, 6*time.Hour, 80)
}

func TestGetOrCreateExpiresAfterTTL(t *testing.T) {
	cs := newTestContextService(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cs.Now = func() time.Time { return base }

	c := cs.GetOrCreate(context.Background(), "u1", "")
	cs.PushHistory(&c, entities.RoleUser, "東京の天気は？")
	c.LastKeyword = "東京"
	require.NoError(t, cs.Save(context.Background(), c))

	// just inside the window the context survives
	cs.Now = func() time.Time { return base.Add(6*time.Hour - time.Minute) }
	kept := cs.GetOrCreate(context.Background(), "u1", "")
	assert.Equal(t, "東京", kept.LastKeyword)
	assert.Len(t, kept.History, 1)

	// past the window the same user starts over
	cs.Now = func() time.Time { return base.Add(6*time.Hour + time.Minute) }
	fresh := cs.GetOrCreate(context.Background(), "u1", "")
	assert.Empty(t, fresh.LastKeyword)
	assert.Empty(t, fresh.History)
}

func TestGetOrCreatePersona(t *testing.T) {
	cs := newTestContextService(t)

	c := cs.GetOrCreate(context.Background(), "u1", "")
	assert.Equal(t, "neutral", c.Persona)

	c.Persona = "kind"
	require.NoError(t, cs.Save(context.Background(), c))

	// an explicit persona on a later request overrides the stored one
	again := cs.GetOrCreate(context.Background(), "u1", "snarky")
	assert.Equal(t, "snarky", again.Persona)

	// no persona keeps whatever is stored
	kept := cs.GetOrCreate(context.Background(), "u1", "")
	assert.Equal(t, "kind", kept.Persona)
}

func TestPushHistoryBoundsFIFO(t *testing.T) {
	cs := newTestContextService(t)
	cs.MaxHistory = 5

	c := cs.GetOrCreate(context.Background(), "u1", "")
	for i := 0; i < 8; i++ {
		cs.PushHistory(&c, entities.RoleUser, fmt.Sprintf("msg-%d", i))
	}

	require.Len(t, c.History, 5)
	assert.Equal(t, "msg-3", c.History[0].Text)
	assert.Equal(t, "msg-7", c.History[4].Text)
}

func TestRecordEntityCapsPoolAndTracksKeyword(t *testing.T) {
	cs := newTestContextService(t)

	c := cs.GetOrCreate(context.Background(), "u1", "")
	for i := 0; i < 12; i++ {
		cs.RecordEntity(&c, fmt.Sprintf("entity-%d", i))
	}

	require.Len(t, c.LastEntities, 10)
	assert.Equal(t, "entity-11", c.LastEntities[0].Title)
	assert.Equal(t, "entity-2", c.LastEntities[9].Title)
	assert.Equal(t, "entity-11", c.LastKeyword)
}

func TestRecordEntityIgnoresEmptyTitle(t *testing.T) {
	cs := newTestContextService(t)
	c := cs.GetOrCreate(context.Background(), "u1", "")
	cs.RecordEntity(&c, "")
	assert.Empty(t, c.LastEntities)
	assert.Empty(t, c.LastKeyword)
}

func TestMaybeResetForNewTopic(t *testing.T) {
	cs := newTestContextService(t)

	seed := func() entities.Context {
		c := cs.GetOrCreate(context.Background(), "u1", "")
		cs.RecordEntity(&c, "東京タワー")
		cs.PushHistory(&c, entities.RoleUser, "東京タワーについて")
		return c
	}

	t.Run("unrelated keywords reset", func(t *testing.T) {
		c := cs.MaybeResetForNewTopic(seed(), []string{"カレー", "レシピ"}, nlp.IntentUnknown)
		assert.Empty(t, c.LastKeyword)
		assert.Empty(t, c.History)
	})

	t.Run("overlapping keyword keeps context", func(t *testing.T) {
		c := cs.MaybeResetForNewTopic(seed(), []string{"東京"}, nlp.IntentUnknown)
		assert.Equal(t, "東京タワー", c.LastKeyword)
	})

	t.Run("question intent keeps context", func(t *testing.T) {
		c := cs.MaybeResetForNewTopic(seed(), []string{"カレー"}, nlp.IntentQuestion)
		assert.Equal(t, "東京タワー", c.LastKeyword)
	})

	t.Run("no keywords keeps context", func(t *testing.T) {
		c := cs.MaybeResetForNewTopic(seed(), nil, nlp.IntentUnknown)
		assert.Equal(t, "東京タワー", c.LastKeyword)
	})

	t.Run("no prior keyword keeps context", func(t *testing.T) {
		c := cs.GetOrCreate(context.Background(), "u2", "")
		cs.PushHistory(&c, entities.RoleUser, "こんにちは")
		out := cs.MaybeResetForNewTopic(c, []string{"カレー"}, nlp.IntentUnknown)
		assert.Len(t, out.History, 1)
	})
}

func TestIsEcho(t *testing.T) {
	cs := newTestContextService(t)

	c := cs.GetOrCreate(context.Background(), "u1", "")
	cs.PushHistory(&c, entities.RoleUser, "こんにちは")
	cs.PushHistory(&c, entities.RoleBot, "やあ！何か質問はある？")
	require.NoError(t, cs.Save(context.Background(), c))

	assert.True(t, cs.IsEcho(context.Background(), "u1", "やあ！何か質問はある？"))
	assert.True(t, cs.IsEcho(context.Background(), "u1", "  やあ！何か質問はある？  "))
	assert.False(t, cs.IsEcho(context.Background(), "u1", "こんにちは"))
	assert.False(t, cs.IsEcho(context.Background(), "u1", ""))
	assert.False(t, cs.IsEcho(context.Background(), "u2", "やあ！何か質問はある？"))
}

func TestLockIsPerUser(t *testing.T) {
	cs := newTestContextService(t)

	unlockA := cs.Lock("a")
	defer unlockA()

	// a different user must not be blocked by a held lock
	done := make(chan struct{})
	go func() {
		unlockB := cs.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock for user b blocked behind user a")
	}
}

func TestContextsAreIndependentAcrossUsers(t *testing.T) {
	cs := newTestContextService(t)

	c1 := cs.GetOrCreate(context.Background(), "u1", "")
	cs.RecordEntity(&c1, "東京")
	require.NoError(t, cs.Save(context.Background(), c1))

	c2 := cs.GetOrCreate(context.Background(), "u2", "")
	assert.Empty(t, c2.LastKeyword)
	assert.Empty(t, c2.LastEntities)
}
