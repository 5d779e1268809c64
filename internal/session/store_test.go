package session_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Arhamsiaf65/CityInsights/internal/chatbot"
	"github.com/Arhamsiaf65/CityInsights/internal/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, maxTurns int, ttl time.Duration) (*session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewStore(client, maxTurns, ttl), mr
}

func TestStore_AppendAndLoad(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t, 3, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1",
		chatbot.Turn{Speaker: chatbot.SpeakerUser, Text: "one"},
		chatbot.Turn{Speaker: chatbot.SpeakerAssistant, Text: "two"},
	))
	require.NoError(t, store.Append(ctx, "s1",
		chatbot.Turn{Speaker: chatbot.SpeakerUser, Text: "three"},
		chatbot.Turn{Speaker: chatbot.SpeakerAssistant, Text: "four"},
	))

	turns, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "two", turns[0].Text)
	assert.Equal(t, "four", turns[2].Text)
	assert.Equal(t, chatbot.SpeakerAssistant, turns[2].Speaker)

	assert.True(t, mr.Exists("chat:session:s1"))
	assert.Equal(t, time.Hour, mr.TTL("chat:session:s1"))
}

func TestStore_Expires(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t, 5, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s2", chatbot.Turn{Speaker: chatbot.SpeakerUser, Text: "hello"}))
	mr.FastForward(2 * time.Minute)

	turns, err := store.Load(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestStore_EmptyAndInvalidIDs(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t, 5, time.Minute)
	ctx := context.Background()

	turns, err := store.Load(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, turns)
	require.NoError(t, store.Append(ctx, "", chatbot.Turn{Text: "ignored"}))

	_, err = store.Load(ctx, strings.Repeat("x", 200))
	require.ErrorIs(t, err, session.ErrInvalidSessionID)
}

func TestStore_SkipsCorruptEntries(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t, 5, time.Minute)
	_, err := mr.RPush("chat:session:s3", "not json", `{"speaker":"user","text":"ok"}`)
	require.NoError(t, err)

	turns, err := store.Load(context.Background(), "s3")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "ok", turns[0].Text)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t, 5, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, "s4", chatbot.Turn{Text: "x"}))
	require.NoError(t, store.Clear(ctx, "s4"))
	assert.False(t, mr.Exists("chat:session:s4"))
}

func TestStore_RedisDown(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t, 5, time.Minute)
	mr.SetError("server down")

	_, err := store.Load(context.Background(), "s5")
	require.Error(t, err)
}
