package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mylittlepric-cli/internal/chat"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func msg(sender chat.Sender, content string, at time.Time) chat.Message {
	return chat.Message{Content: content, Sender: sender, Kind: chat.KindText, Time: at}
}

func TestAppendAndReadBack(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Append("s1", msg(chat.SenderUser, "show me earrings", now)))
	require.NoError(t, store.Append("s1", msg(chat.SenderAgent, "Here are some options", now.Add(time.Second))))

	msgs, err := store.Messages("s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, chat.SenderUser, msgs[0].Sender)
	require.Equal(t, "show me earrings", msgs[0].Content)
	require.Equal(t, chat.SenderAgent, msgs[1].Sender)
}

func TestMessagesUnknownSession(t *testing.T) {
	store := openTestStore(t)

	msgs, err := store.Messages("nope")
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestSessionsMostRecentFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	require.NoError(t, store.Append("old", msg(chat.SenderUser, "first question", base)))
	require.NoError(t, store.Append("old", msg(chat.SenderAgent, "answer", base.Add(time.Minute))))
	require.NoError(t, store.Append("new", msg(chat.SenderUser, "second question", base.Add(30*time.Minute))))

	sessions, err := store.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.Equal(t, "new", sessions[0].SessionID)
	require.Equal(t, "second question", sessions[0].FirstQuery)
	require.Equal(t, 1, sessions[0].Messages)

	require.Equal(t, "old", sessions[1].SessionID)
	require.Equal(t, "first question", sessions[1].FirstQuery)
	require.Equal(t, 2, sessions[1].Messages)

	// MAX(created_at) loses the declared column type, so LastActive comes
	// back through text conversion; it must still carry the real instant.
	require.WithinDuration(t, base.Add(30*time.Minute), sessions[0].LastActive, time.Second)
	require.WithinDuration(t, base.Add(time.Minute), sessions[1].LastActive, time.Second)
}

func TestStoredTimeVariants(t *testing.T) {
	want := time.Date(2026, 8, 31, 12, 0, 5, 0, time.UTC)

	for _, in := range []any{
		want,
		"2026-08-31 12:00:05 +0000 UTC",
		"2026-08-31T12:00:05Z",
		[]byte("2026-08-31 12:00:05.000000000+00:00"),
	} {
		got := storedTime(in)
		require.True(t, got.Equal(want), "storedTime(%v) = %v, want %v", in, got, want)
	}

	require.True(t, storedTime(nil).IsZero())
	require.True(t, storedTime("not a timestamp").IsZero())
}

func TestSessionsLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(id, msg(chat.SenderUser, "q", base.Add(time.Duration(i)*time.Minute))))
	}

	sessions, err := store.Sessions(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "c", sessions[0].SessionID)
}

// The first-query column skips agent messages even when one precedes the
// first user turn in insertion order.
func TestFirstQueryIsFirstUserMessage(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.Append("s1", msg(chat.SenderAgent, "welcome", now)))
	require.NoError(t, store.Append("s1", msg(chat.SenderUser, "hi there", now.Add(time.Second))))

	sessions, err := store.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "hi there", sessions[0].FirstQuery)
}
