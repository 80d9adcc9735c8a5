package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFile(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory": NewMemory(),
		"file":   fileStore,
	}
}

func TestStreamSemantics(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			key := NotificationStreamKey("marcus")

			exists, err := s.Exists(ctx, key)
			require.NoError(t, err)
			assert.False(t, exists)

			_, err = s.ReadLines(ctx, key)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.AppendLine(ctx, key, "first"))
			require.NoError(t, s.AppendLine(ctx, key, "second"))

			lines, err := s.ReadLines(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []string{"first", "second"}, lines)

			// Overwrite replaces the whole stream, not just the last line.
			require.NoError(t, s.Overwrite(ctx, key, "final"))
			lines, err = s.ReadLines(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []string{"final"}, lines)

			exists, err = s.Exists(ctx, key)
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestSnapshotSemantics(t *testing.T) {
	ctx := context.Background()

	type record struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var missing record
			assert.ErrorIs(t, s.LoadSnapshot(ctx, SnapshotScreenings, &missing), ErrNotFound)

			saved := map[string]record{"a": {ID: "a", Count: 3}}
			require.NoError(t, s.SaveSnapshot(ctx, SnapshotScreenings, saved))

			var loaded map[string]record
			require.NoError(t, s.LoadSnapshot(ctx, SnapshotScreenings, &loaded))
			assert.Equal(t, saved, loaded)

			// Saving again replaces the previous snapshot.
			require.NoError(t, s.SaveSnapshot(ctx, SnapshotScreenings, map[string]record{}))
			var replaced map[string]record
			require.NoError(t, s.LoadSnapshot(ctx, SnapshotScreenings, &replaced))
			assert.Empty(t, replaced)
		})
	}
}

func TestStreamKeyConventions(t *testing.T) {
	assert.Equal(t, "tickets_u1", TicketStreamKey("u1"))
	assert.Equal(t, "notifications_u1", NotificationStreamKey("u1"))
	assert.Equal(t, "history_h1", HistoryStreamKey("h1"))
}
