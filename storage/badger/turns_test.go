package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddollina/assistant/core"
)

func newTestStore(t *testing.T) *TurnStore {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	store, err := NewTurnStore(backend)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTurnStore_AppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	session := core.IDFromContent("session-a")

	for i := 1; i <= 3; i++ {
		err := store.AppendTurn(ctx, session, core.Turn{
			Human:     fmt.Sprintf("question %d", i),
			Assistant: fmt.Sprintf("answer %d", i),
		})
		require.NoError(t, err)
	}

	turns, err := store.RecentTurns(ctx, session, 10)
	require.NoError(t, err)
	require.Len(t, turns, 3)

	assert.Equal(t, "question 1", turns[0].Human, "turns come back oldest first")
	assert.Equal(t, "question 3", turns[2].Human)
	assert.Equal(t, "answer 2", turns[1].Assistant)
}

func TestTurnStore_LimitKeepsMostRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	session := core.IDFromContent("session-a")

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.AppendTurn(ctx, session, core.Turn{
			Human:     fmt.Sprintf("question %d", i),
			Assistant: "answer",
		}))
	}

	turns, err := store.RecentTurns(ctx, session, 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "question 4", turns[0].Human)
	assert.Equal(t, "question 5", turns[1].Human)
}

func TestTurnStore_SessionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendTurn(ctx, core.IDFromContent("session-a"), core.Turn{Human: "a question", Assistant: "a answer"}))
	require.NoError(t, store.AppendTurn(ctx, core.IDFromContent("session-b"), core.Turn{Human: "b question", Assistant: "b answer"}))

	turns, err := store.RecentTurns(ctx, core.IDFromContent("session-a"), 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "a question", turns[0].Human)
}

func TestTurnStore_EmptySession(t *testing.T) {
	store := newTestStore(t)

	turns, err := store.RecentTurns(context.Background(), core.IDFromContent("nobody"), 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestTurnStore_RejectsInvalidTurn(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendTurn(context.Background(), core.IDFromContent("session-a"), core.Turn{Assistant: "answer without question"})
	assert.ErrorIs(t, err, core.ErrInvalidTurn)
}
